package tandem

import (
	"fmt"
	"slices"
)

var _ = ValidateComponent[ChildOf]()
var _ = ValidateComponent[Children]()

// ChildOf links an entity to its parent entity.
// Inserting a ChildOf also records the entity in the Children component
// of the parent. Despawning the parent despawns all of its children.
type ChildOf struct {
	Component[ChildOf]
	Parent EntityId
}

// Children lists the entities that point to this entity via ChildOf,
// in the order their ChildOf components were inserted.
//
// Children is managed by the world. You must not insert it yourself and
// you must not modify the Children slice.
type Children struct {
	Component[Children]
	Children []EntityId
}

func (w *World) addToChildren(parentId, childId EntityId) {
	parent, ok := w.entities[parentId]
	if !ok {
		panic(fmt.Sprintf("parent entity %s does not exist", parentId))
	}

	childrenType := componentTypeOf[Children]()

	if ptr, ok := parent.components[childrenType]; ok {
		children := ptr.Interface().(*Children)
		if !slices.Contains(children.Children, childId) {
			children.Children = append(children.Children, childId)
		}

		return
	}

	// first child, create the component on the parent
	parent.components[childrenType] = copyToHeap(Children{
		Children: []EntityId{childId},
	})
}

func (w *World) removeFromChildren(parentId, childId EntityId) {
	parent, ok := w.entities[parentId]
	if !ok {
		// the parent is already gone
		return
	}

	childrenType := componentTypeOf[Children]()

	ptr, ok := parent.components[childrenType]
	if !ok {
		return
	}

	children := ptr.Interface().(*Children)

	idx := slices.Index(children.Children, childId)
	if idx < 0 {
		return
	}

	children.Children = slices.Delete(children.Children, idx, idx+1)

	if len(children.Children) == 0 {
		// the last child is gone, drop the component
		delete(parent.components, childrenType)
	}
}
