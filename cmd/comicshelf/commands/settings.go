package commands

import (
	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/internal/render"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/constant"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultOutput = "public"

func init() {
	viper.SetDefault("output", defaultOutput)
}

// outputDir prefers an explicit --output over the configured output folder.
func outputDir(cmd *cobra.Command) string {
	if flag := cmd.Flags().Lookup("output"); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	return viper.GetString("output")
}

// newLoader reads both catalog documents from the configured locations.
func newLoader() *catalog.Loader {
	return catalog.NewLoader(viper.GetString("data"), viper.GetString("playlists"))
}

func configuredThumbFormat() constant.ThumbnailFormat {
	return constant.FindThumbnailFormat(viper.GetString("thumb_format"))
}

// thumbsDir returns the thumbnail folder when it is configured and exists.
func thumbsDir() string {
	dir := viper.GetString("thumbs")
	if dir == "" {
		return ""
	}
	if !utils.IsValidFolder(dir) {
		log.Warn().Str("thumbs", dir).Msg("Thumbnail folder does not exist, previews use full pictures")
		return ""
	}
	return dir
}

func newRenderer() (*render.Renderer, error) {
	opts := render.Options{
		SiteName:   viper.GetString("site_name"),
		RandomTags: viper.GetInt("random_tags"),
	}
	if thumbsDir() != "" {
		opts.ThumbnailExt = configuredThumbFormat().Extension()
	}
	return render.New(opts)
}
