package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Lifecycle is driven by the scene once per frame, parents before children.
type Lifecycle interface {
	Init() error
	Destroy() error
	Update() error
	Draw(screen *ebiten.Image)
}

// GameObject is the highest level interface for game related types.
type GameObject interface {
	Lifecycle

	GetID() string
	GetZIndex() int
	GetParent() GameObject
	SetParent(parent GameObject)
	AddChild(id string, child GameObject) error
	RemoveChild(id string) error
	GetChildren() []GameObject
}

// BaseObject implements the tree part of GameObject.
// Types embed it and override the lifecycle methods they need.
type BaseObject struct {
	id       string
	zIndex   int
	parent   GameObject
	children *children
}

type NewBaseObjectOpts struct {
	ZIndex int
}

var _ GameObject = &BaseObject{}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	o := &BaseObject{
		id:       id,
		children: newChildren(),
	}
	if opts != nil {
		o.zIndex = opts.ZIndex
	}
	return o
}

func (o *BaseObject) Init() error {
	return nil
}

func (o *BaseObject) Destroy() error {
	return nil
}

func (o *BaseObject) Update() error {
	return nil
}

func (o *BaseObject) Draw(screen *ebiten.Image) {}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetZIndex() int {
	return o.zIndex
}

func (o *BaseObject) GetParent() GameObject {
	return o.parent
}

func (o *BaseObject) SetParent(parent GameObject) {
	o.parent = parent
}

// AddChild initializes the tree of child and attaches it under id.
func (o *BaseObject) AddChild(id string, child GameObject) error {
	if o.children.Get(id) != nil {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)
	return nil
}

// RemoveChild destroys the tree of the child with id and detaches it.
func (o *BaseObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	return nil
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children.List()
}

// RemoveFromParent detaches the object from its parent. Objects that remove
// themselves during an update are dropped once the update pass completes.
func (o *BaseObject) RemoveFromParent() error {
	if o.parent == nil {
		return fmt.Errorf("object %s has no parent", o.id)
	}
	return o.parent.RemoveChild(o.id)
}

// children keeps child objects in insertion order with lookup by id.
type children struct {
	idxIDObjects map[string]int
	objects      []GameObject
}

func newChildren() *children {
	return &children{
		idxIDObjects: make(map[string]int),
	}
}

func (c *children) Add(id string, child GameObject) {
	c.idxIDObjects[id] = len(c.objects)
	c.objects = append(c.objects, child)
}

func (c *children) Get(id string) GameObject {
	i, ok := c.idxIDObjects[id]
	if !ok {
		return nil
	}
	return c.objects[i]
}

func (c *children) Remove(id string) {
	i, ok := c.idxIDObjects[id]
	if !ok {
		return
	}
	c.objects = append(c.objects[:i], c.objects[i+1:]...)
	delete(c.idxIDObjects, id)
	for j := i; j < len(c.objects); j++ {
		c.idxIDObjects[c.objects[j].GetID()] = j
	}
}

// List returns a snapshot, so callers may modify the tree while iterating.
func (c *children) List() []GameObject {
	list := make([]GameObject, len(c.objects))
	copy(list, c.objects)
	return list
}

func InitTree(o GameObject) error {
	if err := o.Init(); err != nil {
		return fmt.Errorf("failed to initialize %s: %v", o.GetID(), err)
	}
	for _, child := range o.GetChildren() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

func DestroyTree(o GameObject) error {
	for _, child := range o.GetChildren() {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	if err := o.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy %s: %v", o.GetID(), err)
	}
	return nil
}

func UpdateTree(o GameObject) error {
	if err := o.Update(); err != nil {
		return err
	}
	for _, child := range o.GetChildren() {
		if err := UpdateTree(child); err != nil {
			return err
		}
	}
	return nil
}

func DrawTree(o GameObject, screen *ebiten.Image) {
	o.Draw(screen)
	for _, child := range o.GetChildren() {
		DrawTree(child, screen)
	}
}
