package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arvogrid/floorsa/pkg/blockio"
	"github.com/arvogrid/floorsa/pkg/bstree"
	"github.com/arvogrid/floorsa/pkg/cost"
	"github.com/arvogrid/floorsa/pkg/packer"
	"github.com/arvogrid/floorsa/pkg/rng"
)

func (c *CLI) treeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <input.block>",
		Short: "Build and pack one random initial B*-tree for debugging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.debugTree(args[0])
		},
	}
	return cmd
}

func (c *CLI) debugTree(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cat, err := blockio.ReadCatalogue(f)
	if err != nil {
		return err
	}

	r := rng.New(time.Now().UnixNano(), 0)
	tree := bstree.NewRandom(cat, r)
	packer.Pack(tree)
	res := cost.Evaluate(tree, cat)

	fmt.Println(StyleTitle.Render("Random initial tree"))
	printKeyValue("Chip", fmt.Sprintf("%.2f x %.2f", res.ChipW, res.ChipH))
	printKeyValue("Area", fmt.Sprintf("%.4f", res.Area))
	printKeyValue("AR", fmt.Sprintf("%.4f", res.AR))
	printKeyValue("INL", fmt.Sprintf("%.4f", res.INL))
	printKeyValue("Cost", fmt.Sprintf("%.6f", res.Cost))
	fmt.Println()
	fmt.Println(StyleDim.Render("Node  Block        Parent  Left  Right      X       Y       W       H"))
	for i, n := range tree.Nodes {
		fmt.Printf("%-5d %-12s %-7d %-5d %-6d %7.2f %7.2f %7.2f %7.2f\n",
			i, cat.Block(n.Block).Name, n.Parent, n.Left, n.Right, n.X, n.Y, n.W, n.H)
	}
	return nil
}
