package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mediacue/cuesheet/internal/domain/catalog"
	"github.com/mediacue/cuesheet/internal/infrastructure/config"
)

func newCatalogCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the rate catalog",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every priced channel/region pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadOrEnv(configPath)
			cat, _, err := catalog.Load(cfg.Catalog.Path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CHANNEL\tSCOPE\tREGION\tPROGRAM\tDAY-PART\tLIST\tNET\tSTD SPOTS")
			for _, ch := range cat.Channels() {
				scope := "regional"
				if ch.National {
					scope = "national"
				}
				for _, region := range ch.Regions {
					entry, ok := cat.Rate(ch.Name, region)
					if !ok {
						fmt.Fprintf(w, "%s\t%s\t%s\t(unpriced)\t\t\t\t\n", ch.Name, scope, region)
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
						ch.Name, scope, entry.Region, entry.Program, entry.DayPart,
						entry.ListPrice, entry.NetPrice, entry.StandardSpots)
				}
			}
			return w.Flush()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	cmd.AddCommand(listCmd)
	return cmd
}
