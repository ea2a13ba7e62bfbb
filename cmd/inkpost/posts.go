package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/inkpost/posts"
)

func (c *cli) importCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import <content-dir>",
		Short: "Index the posts of a content directory into sqlite",
		Long: `Read the frontmatter of every <content-dir>/posts/*.md file and
replace the post index in the database with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := posts.LoadDir(os.DirFS(args[0]), "posts")
			if err != nil {
				return err
			}
			store, err := posts.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveAll(catalog.All()); err != nil {
				return err
			}
			c.logger.Info("posts imported", zap.String("db", dbPath), zap.Int("posts", catalog.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts into %s\n", catalog.Len(), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "data/inkpost.db", "Path to the sqlite post index")
	return cmd
}

func (c *cli) postsCmd() *cobra.Command {
	var dbPath, dir, tag string
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List the post catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				catalog *posts.Catalog
				err     error
			)
			if dbPath != "" {
				store, serr := posts.NewStore(dbPath)
				if serr != nil {
					return serr
				}
				defer store.Close()
				catalog, err = store.Catalog()
			} else {
				catalog, err = posts.LoadDir(os.DirFS(dir), "posts")
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tDATE\tTITLE\tTAGS")
			for _, r := range catalog.ByTag(tag) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Slug, r.Date, r.Title, strings.Join(r.Tags, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Read from the sqlite post index instead of a directory")
	cmd.Flags().StringVar(&dir, "dir", "site", "Content directory holding posts/")
	cmd.Flags().StringVar(&tag, "tag", "", "Only list posts with this tag")
	return cmd
}
