package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/mirview/internal/funcnames"
)

// NamesCmd implements the 'names' command.
type NamesCmd struct {
	DataDir string `name:"data-dir" short:"d" help:"Directory holding func_names"`
	All     bool   `name:"all" short:"a" help:"Also list identifiers with a blank entry"`
}

func (n *NamesCmd) Run(g *Global, root *CLI) error {
	dataDir := firstNonEmpty(n.DataDir, root.config().DataDir)
	index, err := funcnames.Load(filepath.Join(dataDir, funcnames.FileName))
	if err != nil {
		return err
	}

	out := g.out()
	for id := 1; id <= index.Len(); id++ {
		name, ok := index.Lookup(id)
		if !ok && !n.All {
			continue
		}
		_, _ = fmt.Fprintf(out, "%d\t%s\n", id, name)
	}
	return nil
}
