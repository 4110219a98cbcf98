// Package inject provides mock implementations of the scene and motion
// services with settable function fields, falling through to an embedded real
// implementation when a field is unset.
package inject

import (
	"context"

	"github.com/SrSupp/helene-probing/scene"
	"github.com/SrSupp/helene-probing/spatialmath"
)

// SceneService is an injected scene service.
type SceneService struct {
	scene.Service
	AddSolidFunc         func(ctx context.Context, name string, pose spatialmath.Pose, prim spatialmath.Primitive) error
	AddMeshFunc          func(ctx context.Context, name string, pose spatialmath.Pose, meshFile string) error
	RemoveFunc           func(ctx context.Context, name string) error
	KnownObjectNamesFunc func(ctx context.Context) ([]string, error)
	ObjectPoseFunc       func(ctx context.Context, name string) (spatialmath.Pose, error)
}

// AddSolid calls the injected AddSolid or the real version.
func (s *SceneService) AddSolid(ctx context.Context, name string, pose spatialmath.Pose, prim spatialmath.Primitive) error {
	if s.AddSolidFunc == nil {
		return s.Service.AddSolid(ctx, name, pose, prim)
	}
	return s.AddSolidFunc(ctx, name, pose, prim)
}

// AddMesh calls the injected AddMesh or the real version.
func (s *SceneService) AddMesh(ctx context.Context, name string, pose spatialmath.Pose, meshFile string) error {
	if s.AddMeshFunc == nil {
		return s.Service.AddMesh(ctx, name, pose, meshFile)
	}
	return s.AddMeshFunc(ctx, name, pose, meshFile)
}

// Remove calls the injected Remove or the real version.
func (s *SceneService) Remove(ctx context.Context, name string) error {
	if s.RemoveFunc == nil {
		return s.Service.Remove(ctx, name)
	}
	return s.RemoveFunc(ctx, name)
}

// KnownObjectNames calls the injected KnownObjectNames or the real version.
func (s *SceneService) KnownObjectNames(ctx context.Context) ([]string, error) {
	if s.KnownObjectNamesFunc == nil {
		return s.Service.KnownObjectNames(ctx)
	}
	return s.KnownObjectNamesFunc(ctx)
}

// ObjectPose calls the injected ObjectPose or the real version.
func (s *SceneService) ObjectPose(ctx context.Context, name string) (spatialmath.Pose, error) {
	if s.ObjectPoseFunc == nil {
		return s.Service.ObjectPose(ctx, name)
	}
	return s.ObjectPoseFunc(ctx, name)
}
