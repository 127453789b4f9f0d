package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"layoutlex/internal/config"
	"layoutlex/internal/diag"
	"layoutlex/internal/parse"
	"layoutlex/internal/source"
	"layoutlex/internal/token"
)

var log = commonlog.GetLogger("layoutlex.driver")

// ScanRequest describes a directory scan.
type ScanRequest struct {
	Dir string
	// Scan supplies extensions, jobs and the diagnostics limit; its Cache
	// flag is ignored, Cache below decides.
	Scan         config.Scan
	Parse        *parse.Config
	WarnControls bool
	Cache        *DiskCache // nil отключает кэш
	Progress     ProgressSink
	Observer     PhaseObserver
}

// FileSummary is what a scan keeps about one file.
type FileSummary struct {
	Path     string        // путь относительно FileSet
	FileID   source.FileID // ID файла в FileSet
	Hash     Digest
	Tokens   int
	Lines    int
	Anchors  int // строки с комментариями над ними
	Comments int // принятые строки комментариев
	Kinds    map[string]int
	Symbols  []string // distinct symbol texts, first-seen order
	Bag      *diag.Bag
	Cached   bool
}

// ScanResult holds per-file summaries in path order.
type ScanResult struct {
	FileSet *source.FileSet
	Files   []FileSummary
	// Symbols interns every distinct symbol across the tree.
	Symbols *source.Interner
}

// Totals aggregates a scan.
type Totals struct {
	Files    int
	Cached   int
	Tokens   int
	Lines    int
	Anchors  int
	Comments int
	Symbols  int
	Errors   int
	Warnings int
}

// Totals sums the per-file summaries.
func (r *ScanResult) Totals() Totals {
	var t Totals
	if r == nil {
		return t
	}
	for i := range r.Files {
		f := &r.Files[i]
		t.Files++
		if f.Cached {
			t.Cached++
		}
		t.Tokens += f.Tokens
		t.Lines += f.Lines
		t.Anchors += f.Anchors
		t.Comments += f.Comments
		if f.Bag == nil {
			continue
		}
		for _, d := range f.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				t.Errors++
			case diag.SevWarning:
				t.Warnings++
			}
		}
	}
	if r.Symbols != nil {
		t.Symbols = r.Symbols.Len() - 1
	}
	return t
}

// listFiles возвращает отсортированный список файлов с подходящими расширениями.
// Скрытые каталоги пропускаем.
func listFiles(dir string, scan config.Scan) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && scan.MatchesExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// Scan tokenizes every matching file under req.Dir in parallel.
// Per-file failures become diagnostics in that file's Bag; the returned
// error is reserved for walk failures and cancellation.
func Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	cfg := req.Parse
	if cfg == nil {
		cfg = parse.DefaultConfig()
	}
	maxDiagnostics := req.Scan.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = config.DefaultMaxDiagnostics
	}

	endWalk := req.Observer.phase("walk")
	files, err := listFiles(req.Dir, req.Scan)
	endWalk()
	if err != nil {
		return nil, err
	}
	log.Debugf("scan %s: %d files", req.Dir, len(files))

	result := &ScanResult{
		FileSet: source.NewFileSetWithBase(req.Dir),
		Symbols: source.NewInterner(),
	}
	if len(files) == 0 {
		return result, nil
	}

	emit := func(evt Event) {
		if req.Progress != nil {
			req.Progress.OnEvent(evt)
		}
	}
	for _, path := range files {
		emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: грузим всё заранее в одной горутине
	endLoad := req.Observer.phase("load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		start := time.Now()
		fileID, err := result.FileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			continue
		}
		fileIDs[path] = fileID
		emit(Event{File: path, Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(start)})
	}
	endLoad()

	jobs := req.Scan.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	summaries := make([]FileSummary, len(files))

	endLex := req.Observer.phase("tokenize")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(maxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				summaries[i] = FileSummary{Path: path, Bag: bag}
				return nil
			}

			file := result.FileSet.Get(fileIDs[path])
			summaries[i] = scanFile(path, file, &req, cfg, maxDiagnostics, emit)
			return nil
		})
	}
	err = g.Wait()
	endLex()
	if err != nil {
		emit(Event{Stage: StageLex, Status: StatusError, Err: err})
		return result, err
	}

	result.Files = summaries
	for i := range summaries {
		for _, sym := range summaries[i].Symbols {
			result.Symbols.Intern(sym)
		}
	}
	emit(Event{Stage: StageLex, Status: StatusDone})
	return result, nil
}

// scanFile answers from the cache when possible, otherwise lexes and
// annotates file and stores the summary.
func scanFile(path string, file *source.File, req *ScanRequest, cfg *parse.Config, maxDiagnostics int, emit func(Event)) FileSummary {
	start := time.Now()
	key := CacheKey(Digest(file.Hash), cfg, req.WarnControls, maxDiagnostics)

	if req.Cache != nil {
		var payload DiskPayload
		hit, err := req.Cache.Get(key, &payload)
		switch {
		case err != nil:
			log.Warningf("cache read for %s: %s", file.Path, err.Error())
		case hit:
			emit(Event{File: path, Stage: StageCache, Status: StatusDone, Elapsed: time.Since(start)})
			return diskPayloadToSummary(&payload, file, maxDiagnostics)
		}
	}

	emit(Event{File: path, Stage: StageLex, Status: StatusWorking})
	summary := Summarize(file, cfg, TokenizeOptions{
		MaxDiagnostics: maxDiagnostics,
		WarnControls:   req.WarnControls,
		Lint:           true,
	})
	status := StatusDone
	if summary.Bag.HasErrors() {
		status = StatusError
	}
	emit(Event{File: path, Stage: StageAnnotate, Status: status, Elapsed: time.Since(start)})

	if req.Cache != nil {
		if err := req.Cache.Put(key, summaryToDiskPayload(&summary)); err != nil {
			log.Warningf("cache write for %s: %s", file.Path, err.Error())
			diag.ReportWarning(diag.BagReporter{Bag: summary.Bag, File: file.ID}, diag.IOCacheError, source.Span{},
				fmt.Sprintf("cache write failed: %v", err)).Emit()
		}
	}
	return summary
}

// Summarize lexes, lints and annotates a loaded file.
func Summarize(file *source.File, cfg *parse.Config, opts TokenizeOptions) FileSummary {
	bag := newBag(opts.MaxDiagnostics)
	summary := FileSummary{
		Path:   file.Path,
		FileID: file.ID,
		Hash:   Digest(file.Hash),
		Kinds:  make(map[string]int),
		Bag:    bag,
	}
	lex, err := lexFile(file, bag, opts)
	if err != nil {
		return summary
	}

	symbols := source.NewInterner()
	for _, tok := range lex.Tokens() {
		summary.Kinds[tok.Kind.String()]++
		if tok.Kind == token.Symbol {
			symbols.InternSpan(tok.Span)
		}
	}
	summary.Tokens = lex.Len()
	summary.Lines = LineCount(lex)
	summary.Symbols = symbols.Snapshot()[1:]

	reporter := diag.BagReporter{Bag: bag, File: file.ID}
	for _, a := range AnnotateSpan(file.Span(), cfg, reporter) {
		summary.Anchors++
		summary.Comments += len(a.Comments)
	}
	return summary
}
