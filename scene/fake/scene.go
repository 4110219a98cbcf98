// Package fake implements an in-memory planning scene. Adds and removes take
// effect only after a configurable apply delay, mimicking the asynchronous
// apply of a real planning scene so convergence-wait logic can be exercised
// without middleware.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"

	"github.com/SrSupp/helene-probing/scene"
	"github.com/SrSupp/helene-probing/spatialmath"
)

// Scene is an in-memory scene.Service.
type Scene struct {
	mu         sync.Mutex
	clock      clock.Clock
	applyDelay time.Duration
	objects    map[string]*record
	logger     golog.Logger
}

type record struct {
	object    scene.Object
	visibleAt time.Time
	// nil until a remove has been requested
	removeAt *time.Time
}

// NewScene returns an empty scene applying changes immediately.
func NewScene(logger golog.Logger) *Scene {
	return &Scene{
		clock:   clock.New(),
		objects: map[string]*record{},
		logger:  logger,
	}
}

// SetApplyDelay sets how long adds and removes take to become observable.
func (s *Scene) SetApplyDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyDelay = d
}

// SetClock replaces the scene's time source, for deterministic tests.
func (s *Scene) SetClock(c clock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = c
}

// AddSolid adds a solid primitive obstacle.
func (s *Scene) AddSolid(ctx context.Context, name string, pose spatialmath.Pose, prim spatialmath.Primitive) error {
	s.add(scene.Object{Name: name, Pose: pose, Primitive: prim})
	return nil
}

// AddMesh adds a mesh-backed obstacle.
func (s *Scene) AddMesh(ctx context.Context, name string, pose spatialmath.Pose, meshFile string) error {
	s.add(scene.Object{Name: name, Pose: pose, MeshFile: meshFile})
	return nil
}

func (s *Scene) add(obj scene.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Name] = &record{
		object:    obj,
		visibleAt: s.clock.Now().Add(s.applyDelay),
	}
	s.logger.Debugw("object add requested", "name", obj.Name, "apply_delay", s.applyDelay)
}

// Remove removes the named obstacle; removing an unknown name is a no-op.
func (s *Scene) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.objects[name]
	if !ok {
		return nil
	}
	removeAt := s.clock.Now().Add(s.applyDelay)
	rec.removeAt = &removeAt
	s.logger.Debugw("object remove requested", "name", name, "apply_delay", s.applyDelay)
	return nil
}

// KnownObjectNames reports all names currently observable in the scene.
func (s *Scene) KnownObjectNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	var names []string
	for name, rec := range s.objects {
		if rec.knownAt(now) {
			names = append(names, name)
		}
	}
	return names, nil
}

// ObjectPose returns the pose of an observable object.
func (s *Scene) ObjectPose(ctx context.Context, name string) (spatialmath.Pose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.objects[name]
	if !ok || !rec.knownAt(s.clock.Now()) {
		return spatialmath.Pose{}, scene.NewObjectNotFoundError(name)
	}
	return rec.object.Pose, nil
}

func (r *record) knownAt(now time.Time) bool {
	if now.Before(r.visibleAt) {
		return false
	}
	return r.removeAt == nil || now.Before(*r.removeAt)
}
