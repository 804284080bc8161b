package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/dogspotter/internal/config"
	"github.com/mrlokans/dogspotter/internal/database"
	"github.com/mrlokans/dogspotter/internal/database/breeds"
	"github.com/mrlokans/dogspotter/internal/database/sightings"
	"github.com/mrlokans/dogspotter/internal/entities"
	"github.com/mrlokans/dogspotter/internal/entrypoint"
	"github.com/mrlokans/dogspotter/internal/matcher"
)

type configFunc func() *config.Config

// withCatalog synchronizes the store and hands the open database to fn.
func withCatalog(ctx context.Context, cfg *config.Config, fn func(db *database.Database) error) error {
	db, _, err := entrypoint.SyncCatalog(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func syncCommand(cfg configFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Mirror the reference dataset into the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, result, err := entrypoint.SyncCatalog(cmd.Context(), cfg(), nil)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Synchronized %d breeds, removed %d stale (%s)\n",
				result.Upserted, result.Removed, result.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func breedsCommand(cfg configFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "breeds [query]",
		Short: "List breeds, optionally filtered by name or alternative name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return withCatalog(cmd.Context(), cfg(), func(db *database.Database) error {
				all, err := breeds.NewRepository(db).ListBreeds(cmd.Context())
				if err != nil {
					return err
				}
				return printBreeds(cmd.OutOrStdout(), matcher.Search(all, query))
			})
		},
	}
}

func imageCommand(cfg configFunc, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "image <breed name>",
		Short: "Resolve and cache the image of a breed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			paths := entrypoint.NewImageResolver(cfg(), version, nil).Resolve(cmd.Context(), name)
			if len(paths) == 0 {
				return fmt.Errorf("no image found for %q", name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), paths[0])
			return nil
		},
	}
}

func matchCommand(cfg configFunc) *cobra.Command {
	var sel matcher.Selections

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Find breeds matching physical traits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sel.Validate(); err != nil {
				return err
			}
			return withCatalog(cmd.Context(), cfg(), func(db *database.Database) error {
				all, err := breeds.NewRepository(db).ListBreeds(cmd.Context())
				if err != nil {
					return err
				}
				return printBreeds(cmd.OutOrStdout(), matcher.Match(all, sel))
			})
		},
	}

	cmd.Flags().StringVar(&sel.Size, "size", "", "toy, small, medium, large or giant")
	cmd.Flags().StringVar(&sel.CoatLength, "coat", "", "short, medium or long")
	cmd.Flags().StringVar(&sel.Ears, "ears", "", "droopy, pricked, semi-pricked or folded")
	return cmd
}

func sightingsCommand(cfg configFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "sightings",
		Short: "List recorded sightings, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), cfg(), func(db *database.Database) error {
				list, err := sightings.NewRepository(db).ListSightings(cmd.Context())
				if err != nil {
					return err
				}
				return printSightings(cmd.OutOrStdout(), list)
			})
		},
	}
}

func printBreeds(out io.Writer, list []entities.Breed) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tCOAT\tEARS\tORIGIN")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Size, b.CoatLength, b.Ears, b.Origin)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d breeds\n", len(list))
	return err
}

func printSightings(out io.Writer, list []entities.Sighting) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tDOG\tBREED\tID")
	for _, s := range list {
		breedID := "-"
		if s.BreedID != nil && *s.BreedID != "" {
			breedID = *s.BreedID
		}
		when := time.UnixMilli(s.Timestamp).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", when, s.DogName, breedID, s.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d sightings\n", len(list))
	return err
}
