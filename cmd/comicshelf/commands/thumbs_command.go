package commands

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/danielkitchener/ComicShelf/pkg/thumbnail"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	command := &cobra.Command{
		Use:   "thumbs",
		Short: "Generate preview thumbnails for every comic",
		Long:  "Generate preview thumbnails for every comic.\nThe cover of each comic is cropped and scaled into the thumbs folder, in the format chosen with --thumb-format.",
		RunE:  ThumbsCommand,
		Args:  cobra.NoArgs,
	}
	command.Flags().Uint8P("quality", "q", thumbnail.DefaultQuality, "Quality for lossy formats (1-100)")
	command.Flags().IntP("parallelism", "n", 4, "Number of thumbnails to generate in parallel")
	command.Flags().BoolP("override", "o", false, "Regenerate thumbnails that are already up to date")
	command.Flags().Int("width", thumbnail.DefaultWidth, "Thumbnail width in pixels")
	command.Flags().Int("height", thumbnail.DefaultHeight, "Thumbnail height in pixels")
	command.Flags().Bool("progress", true, "Show a progress bar")

	AddCommand(command)
}

func ThumbsCommand(cmd *cobra.Command, _ []string) error {
	thumbs := viper.GetString("thumbs")
	if thumbs == "" {
		return fmt.Errorf("thumbs folder is required")
	}
	pictures := viper.GetString("pictures")
	if !utils.IsValidFolder(pictures) {
		return fmt.Errorf("the pictures path needs to be a folder")
	}

	quality, err := cmd.Flags().GetUint8("quality")
	if err != nil || quality <= 0 || quality > 100 {
		return fmt.Errorf("invalid quality value")
	}

	parallelism, err := cmd.Flags().GetInt("parallelism")
	if err != nil || parallelism < 1 {
		return fmt.Errorf("invalid parallelism value")
	}

	override, err := cmd.Flags().GetBool("override")
	if err != nil {
		return fmt.Errorf("invalid override value")
	}

	width, err := cmd.Flags().GetInt("width")
	if err != nil || width < 1 {
		return fmt.Errorf("invalid width value")
	}
	height, err := cmd.Flags().GetInt("height")
	if err != nil || height < 1 {
		return fmt.Errorf("invalid height value")
	}

	format := configuredThumbFormat()
	encoder, err := thumbnail.Get(format)
	if err != nil {
		return fmt.Errorf("failed to get thumbnail encoder: %v", err)
	}
	if err := encoder.Prepare(); err != nil {
		return fmt.Errorf("failed to prepare encoder: %v", err)
	}

	ctx := commandContext(cmd)
	c, err := newLoader().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	generator := &thumbnail.Generator{Width: width, Height: height, Quality: quality, Encoder: encoder}
	log.Info().Str("thumbs", thumbs).Str("format", format.String()).Int("comics", len(c.Comics())).Int("parallelism", parallelism).Msg("Generating thumbnails")

	var bar *progressbar.ProgressBar
	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
		bar = progressbar.NewOptions(len(c.Comics()),
			progressbar.OptionSetDescription("Generating thumbnails"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	comicChan := make(chan *catalog.Comic)
	errorChan := make(chan error, len(c.Comics()))
	var written, skipped atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for comic := range comicChan {
				wasSkipped, err := utils.Thumbnail(ctx, &utils.ThumbnailOptions{
					Generator:   generator,
					Comic:       comic,
					PicturesDir: pictures,
					ThumbsDir:   thumbs,
					Override:    override,
				})
				switch {
				case err != nil:
					errorChan <- fmt.Errorf("error processing comic %s: %w", comic.Name, err)
				case wasSkipped:
					skipped.Add(1)
				default:
					written.Add(1)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	for _, comic := range c.Comics() {
		comicChan <- comic
	}
	close(comicChan)
	wg.Wait()
	close(errorChan)
	if bar != nil {
		_ = bar.Finish()
	}

	var errs []error
	for err := range errorChan {
		log.Error().Err(err).Msg("Thumbnail failed")
		errs = append(errs, err)
	}

	log.Info().Int32("written", written.Load()).Int32("skipped", skipped.Load()).Int("failed", len(errs)).Msg("Thumbnails done")
	if len(errs) > 0 {
		return fmt.Errorf("encountered errors: %v", errs)
	}
	return nil
}
