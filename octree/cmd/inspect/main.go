// Package main loads a point file into an octree and reports the shape of the tree.
package main

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/tinjuiho/tcnj-coctree/octree"
	"github.com/tinjuiho/tcnj-coctree/pointcloud"
)

var logger = golog.NewDevelopmentLogger("octree_inspect")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	File     string `flag:"0,required,usage=point file (.las, .xyz or .txt)"`
	MaxDepth int    `flag:"max-depth,usage=refuse to subdivide below this depth (0 leaves the tree unguarded)"`
	Order    string `flag:"order,default=pre,usage=traversal order used by --dump (pre or post)"`
	Dump     bool   `flag:"dump,usage=log every node of the tree"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Order != "pre" && argsParsed.Order != "post" {
		return errors.Errorf("unknown traversal order %q", argsParsed.Order)
	}

	points, err := pointcloud.ReadFile(argsParsed.File, logger)
	if err != nil {
		return err
	}
	root, err := pointcloud.Load(points, octree.WithLogger(logger), octree.WithMaxDepth(argsParsed.MaxDepth))
	if err != nil {
		return err
	}
	defer root.Free()

	summary, err := root.Stats().Summary()
	if err != nil {
		return err
	}
	logger.Infow("octree summary",
		"file", argsParsed.File,
		"min", root.BoundsMin(),
		"max", root.BoundsMax(),
		"summary", summary.String(),
	)

	if !argsParsed.Dump {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return dump(root, argsParsed.Order, logger)
}

func dump(root *octree.Node, order string, logger golog.Logger) error {
	onBranch := func(n *octree.Node) {
		logger.Infow("branch", "depth", n.Depth(), "min", n.BoundsMin(), "max", n.BoundsMax(), "count", n.Count())
	}
	onLeaf := func(n *octree.Node) {
		p, _ := n.Point()
		logger.Infow("leaf", "depth", n.Depth(), "point", p.P, "value", p.Value)
	}
	var ok bool
	switch order {
	case "post":
		ok = root.PostOrder(onBranch, onLeaf)
	default:
		ok = root.PreOrder(onBranch, onLeaf)
	}
	if !ok {
		return errors.New("no tree to dump")
	}
	return nil
}
