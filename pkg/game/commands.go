package game

import (
	"sync"

	"github.com/decker502/slots/pkg/backend"
)

// CommandKind 指令类型
type CommandKind int

const (
	// CommandSpinRequested 开始新一轮旋转
	CommandSpinRequested CommandKind = iota
	// CommandStopRequested 请求停轴
	CommandStopRequested
	// CommandOutcomeReceived 出奖结果到达
	CommandOutcomeReceived
	// CommandOutcomeFailed 出奖结果请求失败
	CommandOutcomeFailed
	// CommandReelSetChanged 列数/行数变化，携带新的转轴配置
	CommandReelSetChanged
)

// String 返回指令名称（用于日志）
func (k CommandKind) String() string {
	switch k {
	case CommandSpinRequested:
		return "SpinRequested"
	case CommandStopRequested:
		return "StopRequested"
	case CommandOutcomeReceived:
		return "OutcomeReceived"
	case CommandOutcomeFailed:
		return "OutcomeFailed"
	case CommandReelSetChanged:
		return "ReelSetChanged"
	default:
		return "Unknown"
	}
}

// Command 离散指令
//
// 按钮操作和后端回调都转换为指令，在下一帧开始时统一处理，
// 保证转轴状态只在 Tick 内被修改。
type Command struct {
	Kind CommandKind

	// SpinID 旋转序号，用于丢弃过期的出奖结果
	SpinID uint64

	// Outcome 出奖结果（仅 OutcomeReceived）
	Outcome *backend.SpinOutcome

	// Err 失败原因（仅 OutcomeFailed）
	Err error

	// Configuration 新的转轴配置（仅 ReelSetChanged）
	Configuration *backend.ReelConfiguration
}

// CommandQueue 线程安全的指令队列
//
// 唯一跨 goroutine 共享的结构。任意 goroutine 可以 Push，
// 只有编排器在 Tick 开始时 Drain。
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

// NewCommandQueue 创建指令队列
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Push 追加一条指令
func (q *CommandQueue) Push(cmd Command) {
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Drain 取出所有待处理指令（按入队顺序）
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	cmds := q.pending
	q.pending = nil
	return cmds
}

// Len 待处理指令数
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
