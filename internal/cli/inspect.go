package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arvogrid/floorsa/pkg/blockio"
)

func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <input.block>",
		Short: "Parse a .block file and print catalogue statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.inspectCatalogue(args[0])
		},
	}
	return cmd
}

func (c *CLI) inspectCatalogue(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cat, err := blockio.ReadCatalogue(f)
	if err != nil {
		return err
	}

	totalVariants := 0
	minVariants, maxVariants := -1, 0
	for i := 0; i < cat.Len(); i++ {
		n := len(cat.Block(i).Variants)
		totalVariants += n
		if minVariants == -1 || n < minVariants {
			minVariants = n
		}
		if n > maxVariants {
			maxVariants = n
		}
	}

	fmt.Println(StyleTitle.Render(path))
	printKeyValue("Blocks", fmt.Sprintf("%d", cat.Len()))
	printKeyValue("Variants", fmt.Sprintf("%d total, %d-%d per block", totalVariants, minVariants, maxVariants))
	fmt.Println()
	fmt.Println(StyleDim.Render("Blocks in name order:"))
	for _, idx := range cat.SortedIndices() {
		b := cat.Block(idx)
		fmt.Printf("  %-12s %d variant(s)\n", b.Name, len(b.Variants))
	}
	return nil
}
