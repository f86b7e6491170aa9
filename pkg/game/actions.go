package game

// Action 界面操作（按钮或快捷键）
type Action int

const (
	ActionNone Action = iota
	ActionSpin
	ActionStop
	ActionAddReelAndRow
	ActionReduceReelAndRow
	ActionToggleSound
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSpin:
		return "spin"
	case ActionStop:
		return "stop"
	case ActionAddReelAndRow:
		return "add"
	case ActionReduceReelAndRow:
		return "reduce"
	case ActionToggleSound:
		return "sound"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Perform 执行与转轴相关的界面操作
//
// 转轴仍在运动时再次旋转返回 ErrSpinInProgress，列数/行数修改进行中
// 返回 ErrReelSetChanging；声音开关和退出由调用方处理，这里忽略。
func (c *SpinController) Perform(a Action) error {
	switch a {
	case ActionSpin:
		if c.orchestrator.Busy() {
			return ErrSpinInProgress
		}
		return c.Spin()
	case ActionStop:
		c.Stop()
	case ActionAddReelAndRow:
		return c.AddReelAndRow()
	case ActionReduceReelAndRow:
		return c.ReduceReelAndRow()
	}
	return nil
}
