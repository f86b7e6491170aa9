// Package ecs 转轴模拟使用的最小实体-组件存储
//
// 转轴集合中的每一列转轴都是一个实体，其运动状态、符号带、回弹动画
// 以组件形式挂载在实体上。同一类型的组件在一个实体上最多一个。
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// componentSet 一个实体上按类型索引的组件
type componentSet map[reflect.Type]any

// EntityManager 管理所有实体和组件
//
// 非并发安全：只在编排器 Tick 所在的 goroutine 上使用。
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]componentSet
	// doomed 标记待删除的实体，RemoveMarkedEntities 时统一清理
	doomed map[EntityID]struct{}
}

// NewEntityManager 创建一个空的 EntityManager
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]componentSet),
		doomed:   make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = make(componentSet)
	return id
}

// DestroyEntity 标记实体待删除（不立即删除，重复标记无副作用）
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.entities[id]; ok {
		em.doomed[id] = struct{}{}
	}
}

// RemoveMarkedEntities 清理所有标记删除的实体
//
// 返回:
//   - int: 实际删除的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	n := len(em.doomed)
	for id := range em.doomed {
		delete(em.entities, id)
	}
	clear(em.doomed)
	return n
}

// Exists 实体是否存在（已标记删除但尚未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 当前存活的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// AddComponent 为实体添加组件，同类型的旧组件被替换
//
// 返回:
//   - bool: 实体不存在时返回 false
func (em *EntityManager) AddComponent(id EntityID, component any) bool {
	set, ok := em.entities[id]
	if !ok {
		return false
	}
	set[reflect.TypeOf(component)] = component
	return true
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if set, ok := em.entities[id]; ok {
		delete(set, componentType)
	}
}

// GetComponent 获取实体的指定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.entities[id][componentType]
	return comp, ok
}

// HasComponent 实体是否拥有指定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.entities[id][componentType]
	return ok
}

// GetEntitiesWith 查询同时拥有所有指定组件类型的实体
//
// 返回值按ID升序，保证遍历顺序稳定（与列顺序一致）。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0, len(em.entities))
	for id, set := range em.entities {
		if set.hasAll(componentTypes) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

func (s componentSet) hasAll(types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := s[t]; !ok {
			return false
		}
	}
	return true
}
