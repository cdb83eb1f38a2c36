package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/message"

	"github.com/hyperifyio/urldeck/internal/distribute"
	"github.com/hyperifyio/urldeck/internal/extract"
	"github.com/hyperifyio/urldeck/internal/office"
	"github.com/hyperifyio/urldeck/internal/scan"
)

// ErrNoInputs is returned when the directory holds no spreadsheet and no
// word-processing file to collect URLs from.
var ErrNoInputs = errors.New("no input files found")

// deck is the presentation access the run needs beyond distribution.
type deck interface {
	distribute.Presentation
	SaveAs(path string) error
	Close() error
}

type App struct {
	cfg     Config
	printer *message.Printer

	openSheet func(path string) (extract.Sheet, error)
	openDoc   func(path string) (extract.Paragraphs, error)
	openDeck  func(path string) (deck, error)
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &App{
		cfg:       cfg,
		printer:   newPrinter(cfg.Language),
		openSheet: openWorkbook,
		openDoc:   openWordDocument,
		openDeck:  openPresentation,
	}, nil
}

func openWorkbook(path string) (extract.Sheet, error) {
	wb, err := office.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

func openWordDocument(path string) (extract.Paragraphs, error) {
	doc, err := office.OpenWordDocument(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func openPresentation(path string) (deck, error) {
	p, err := office.OpenPresentation(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Run scans the directory, extracts and merges URLs from every spreadsheet
// and word document, then distributes them onto the first presentation.
// Sources are processed one at a time in listing order.
func (a *App) Run(ctx context.Context) (sum Summary, err error) {
	sum = Summary{GeneratedAt: time.Now().UTC(), Version: BuildVersion, Dir: a.cfg.Dir}
	defer func() {
		if err != nil {
			sum.Error = err.Error()
		}
		a.writeReport(sum)
	}()

	inputs := a.discover()
	if len(inputs.Spreadsheets) == 0 && len(inputs.WordDocuments) == 0 {
		log.Error().Str("dir", a.cfg.Dir).Msg(a.printer.Sprintf(msgNoFiles))
		return sum, ErrNoInputs
	}

	merged, err := a.extractAll(ctx, inputs, &sum)
	if err != nil {
		return sum, err
	}
	urls := merged.Sorted()
	sum.URLs = urls
	log.Info().Int("unique", len(urls)).Int("sources", len(sum.Sources)).Msg("urls merged")

	path, ok := inputs.Presentation()
	if !ok {
		log.Warn().Msg(a.printer.Sprintf(msgNoPresentation, a.cfg.Dir))
		return sum, nil
	}
	if len(inputs.Presentations) > 1 {
		log.Debug().Strs("ignored", inputs.Presentations[1:]).Msg("extra presentations ignored")
	}
	sum.Deck, err = a.distribute(ctx, path, urls)
	return sum, err
}

func (a *App) discover() scan.Inputs {
	opts := scan.Options{}
	if a.cfg.SkipProcessed {
		opts.SkipPrefix = extract.OutputPrefix
	}
	inputs, err := scan.Dir(a.cfg.Dir, opts)
	if err != nil {
		// Listing failures degrade to an empty input set.
		log.Error().Err(err).Msg(a.printer.Sprintf(msgNoFiles))
		return scan.Inputs{}
	}
	log.Info().
		Int("spreadsheets", len(inputs.Spreadsheets)).
		Int("word", len(inputs.WordDocuments)).
		Int("presentations", len(inputs.Presentations)).
		Str("dir", a.cfg.Dir).
		Msg("inputs discovered")
	return inputs
}

type source struct {
	kind scan.Kind
	path string
	ex   extract.Extractor
}

func (a *App) sources(in scan.Inputs) []source {
	out := make([]source, 0, len(in.Spreadsheets)+len(in.WordDocuments))
	for _, p := range in.Spreadsheets {
		out = append(out, source{kind: scan.Spreadsheet, path: p, ex: &extract.SpreadsheetExtractor{Path: p, Open: a.openSheet}})
	}
	for _, p := range in.WordDocuments {
		out = append(out, source{kind: scan.WordDocument, path: p, ex: &extract.WordDocExtractor{Path: p, Open: a.openDoc}})
	}
	return out
}

// extractAll runs every extractor sequentially and merges the results. A
// failing source aborts the run unless KeepGoing is set.
func (a *App) extractAll(ctx context.Context, in scan.Inputs, sum *Summary) (extract.Set, error) {
	merged := extract.NewSet()
	for _, src := range a.sources(in) {
		if err := ctx.Err(); err != nil {
			return merged, err
		}
		res, err := src.ex.Extract(ctx)
		entry := SourceSummary{Path: src.path, Kind: string(src.kind), URLs: res.URLs.Len(), Output: res.Output}
		if err != nil {
			entry.Error = err.Error()
			sum.Sources = append(sum.Sources, entry)
			if !a.cfg.KeepGoing {
				return merged, fmt.Errorf("extract %s: %w", src.path, err)
			}
			log.Warn().Err(err).Str("source", src.path).Msg("source skipped")
			continue
		}
		entry.SHA256 = outputDigest(res.Output)
		sum.Sources = append(sum.Sources, entry)
		merged.Merge(res.URLs)
		ev := log.Info().Str("source", src.path).Str("kind", string(src.kind)).Int("urls", res.URLs.Len())
		if res.Output != "" {
			ev = ev.Str("out", res.Output)
		}
		ev.Msg("source processed")
	}
	return merged, nil
}

func (a *App) distribute(ctx context.Context, path string, urls []string) (*DeckSummary, error) {
	d, err := a.openDeck(path)
	if err != nil {
		return nil, fmt.Errorf("open presentation %s: %w", path, err)
	}
	defer d.Close()

	plan, err := distribute.New().Distribute(ctx, d, urls)
	ds := &DeckSummary{
		Path:          path,
		Slides:        d.SlideCount(),
		SlidesWritten: len(plan.Chunks),
		URLsWritten:   plan.Written(),
		URLsDropped:   plan.Dropped,
		ChunkSize:     plan.ChunkSize,
	}
	if err != nil {
		return ds, fmt.Errorf("distribute into %s: %w", path, err)
	}
	if plan.Dropped > 0 {
		log.Warn().Int("dropped", plan.Dropped).Msg(a.printer.Sprintf(msgDropped, plan.Dropped, ds.Slides))
	}
	out := extract.DerivedPath(path)
	if err := d.SaveAs(out); err != nil {
		return ds, fmt.Errorf("save %s: %w", out, err)
	}
	ds.Output = out
	ds.SHA256 = outputDigest(out)
	log.Info().
		Str("out", out).
		Int("slides", ds.SlidesWritten).
		Int("written", ds.URLsWritten).
		Int("chunk", ds.ChunkSize).
		Msg("wrote presentation")
	return ds, nil
}
