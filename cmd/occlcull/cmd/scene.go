package cmd

import (
	"fmt"

	"github.com/arl/gobj"

	"github.com/theblobinthesky/occlcull"
)

type pointConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type meshConfig struct {
	OBJ      string `yaml:"obj"`
	Occluder bool   `yaml:"occluder"`
}

// sceneConfig is the on-disk YAML shape of a scene: the clip box every mesh
// is expected to live inside, and the ordered list of OBJ meshes to load and
// flag. Meshes are processed in file order, so an occluder earlier in the
// list can widen occlusion for a target later in the list but not the other
// way around.
type sceneConfig struct {
	Clip struct {
		TL pointConfig `yaml:"tl"`
		BR pointConfig `yaml:"br"`
	} `yaml:"clip"`
	Meshes []meshConfig `yaml:"meshes"`
}

func defaultSceneConfig() sceneConfig {
	var cfg sceneConfig
	cfg.Clip.TL = pointConfig{X: -1000, Y: -1000}
	cfg.Clip.BR = pointConfig{X: 1000, Y: 1000}
	cfg.Meshes = []meshConfig{
		{OBJ: "occluder.obj", Occluder: true},
		{OBJ: "target.obj", Occluder: false},
	}
	return cfg
}

func (s sceneConfig) clipBBox() occlcull.BBox {
	return occlcull.BBox{
		TL: occlcull.Point{X: s.Clip.TL.X, Y: s.Clip.TL.Y},
		BR: occlcull.Point{X: s.Clip.BR.X, Y: s.Clip.BR.Y},
	}
}

// loadOBJFootprint reads the OBJ file at path and returns the convex hull of
// every vertex referenced by any of its polygons, projected onto the XY
// plane. occlcull reasons about 2D silhouettes, so a mesh's footprint is the
// hull of its projected geometry rather than its individual 3D faces.
func loadOBJFootprint(path string) ([]occlcull.Point, error) {
	obj, err := gobj.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %v", path, err)
	}

	var pts []occlcull.Point
	for _, poly := range obj.Polys() {
		for _, v := range poly {
			pts = append(pts, occlcull.Point{X: float32(v.X()), Y: float32(v.Y())})
		}
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("%q: need at least 3 vertices for a hull, got %d", path, len(pts))
	}
	return occlcull.ConvexHullInPlace(pts), nil
}

// loadSceneMeshes loads every mesh named by scene, in order, returning one
// OcclMesh per entry at the same index as its entry in scene.Meshes.
func loadSceneMeshes(scene sceneConfig) ([]*occlcull.OcclMesh, error) {
	meshes := make([]*occlcull.OcclMesh, len(scene.Meshes))
	for i, m := range scene.Meshes {
		hull, err := loadOBJFootprint(m.OBJ)
		if err != nil {
			return nil, err
		}
		meshes[i] = occlcull.NewOcclMesh(hull)
	}
	return meshes, nil
}
