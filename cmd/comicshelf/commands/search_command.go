package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
)

var searchKind = catalog.SearchAll

func init() {
	command := &cobra.Command{
		Use:   "search [query]",
		Short: "Search playlists, tags and comic names",
		Long:  "Search playlists, tags and comic names.\nThe query is matched case-insensitively as a substring.",
		RunE:  SearchCommand,
		Args:  cobra.MinimumNArgs(1),
	}
	kindFlag := enumflag.New(&searchKind, "type", catalog.SearchKinds, enumflag.EnumCaseInsensitive)
	command.Flags().VarP(kindFlag, "type", "t", "What to match the query against: all, tag, playlist or comic_name")
	command.Flags().Lookup("type").NoOptDefVal = catalog.SearchAll.String()

	AddCommand(command)
}

func SearchCommand(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	c, err := newLoader().Load(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	result, err := c.Search(query, searchKind)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyQuery) {
			return fmt.Errorf("search query is required")
		}
		return err
	}
	log.Debug().Str("query", result.Query).Str("type", result.Kind.String()).Int("playlists", len(result.Playlists)).Int("comics", len(result.Comics)).Msg("Search done")

	printSearchResult(cmd.OutOrStdout(), result)
	return nil
}

func printSearchResult(w io.Writer, result *catalog.SearchResult) {
	if result.Empty() {
		_, _ = fmt.Fprintf(w, "Nothing found for '%s'.\n", result.Query)
		return
	}
	_, _ = fmt.Fprintf(w, "Search results for '%s' (type: %s):\n", result.Query, result.Kind)
	for _, playlist := range result.Playlists {
		_, _ = fmt.Fprintf(w, "playlist\t%s\t%d comics\n", playlist.Name, len(playlist.Content))
	}
	for _, hit := range result.Comics {
		playlist := hit.Playlist
		if playlist == "" {
			playlist = "-"
		}
		_, _ = fmt.Fprintf(w, "comic\t%s\t%s\t%s\n", hit.Comic.DisplayTitle(), playlist, strings.Join(hit.Comic.Tags, " "))
	}
}
