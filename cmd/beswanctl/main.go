package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bersekolah/beswanadmin/internal/bootstrap"
	"github.com/bersekolah/beswanadmin/internal/config"
	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/preview/pdfprobe"
)

const usage = `beswanctl <command> [flags]

Commands:
  applications list        List applications with filters and paging
  applications detail      Show one application with nested sections
  applications set-status  Update one application's review status
  applications bulk-status Update many applications at once
  statistics               Show application counts per status
  docs types               List document types for the configured category
  docs list                List my uploaded documents
  docs upload              Upload one or more files for a document type
  docs delete              Delete an unverified document
  docs preview             Classify a document for preview
  docs probe               Open a local PDF and report its page count
  export                   Export tables to a file in the export dir
  media get                Show the latest social links
  media set                Create or update social links

Global flags (before the command):
  -config <path>  YAML config file (env and .env still apply)
`

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	app, err := bootstrap.New("beswanctl", cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dispatch(ctx, app, args); err != nil {
		return reportError(err)
	}
	return 0
}

func reportError(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if domain.IsKind(err, domain.ErrUnauthorized) {
		fmt.Fprintln(os.Stderr, "sesi berakhir; silakan login ulang dan perbarui token")
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		fmt.Fprintln(os.Stderr, "gangguan sementara; coba ulangi perintah")
	}
	return 1
}

func dispatch(ctx context.Context, app *bootstrap.App, args []string) error {
	switch args[0] {
	case "applications":
		return runApplications(ctx, app, args[1:])
	case "statistics":
		return runStatistics(ctx, app)
	case "docs":
		return runDocs(ctx, app, args[1:])
	case "export":
		return runExport(ctx, app, args[1:])
	case "media":
		return runMedia(ctx, app, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runApplications(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("applications: missing subcommand (list, detail, set-status, bulk-status)")
	}
	switch args[0] {
	case "list":
		return applicationsList(ctx, app, args[1:])
	case "detail":
		return applicationsDetail(ctx, app, args[1:])
	case "set-status":
		return applicationsSetStatus(ctx, app, args[1:])
	case "bulk-status":
		return applicationsBulkStatus(ctx, app, args[1:])
	default:
		return fmt.Errorf("applications: unknown subcommand %q", args[0])
	}
}

func applicationsList(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("applications list", flag.ContinueOnError)
	search := fs.String("search", "", "search by name, email, or nomor pendaftaran")
	status := fs.String("status", "all", "status filter (all, pending, lolos_berkas, lolos_wawancara, diterima, ditolak)")
	period := fs.String("period", "all", "beasiswa period filter")
	finalized := fs.String("finalized", "all", "finalized filter (all, yes, no)")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 10, "rows per page (10, 15, 25, 50)")
	sortBy := fs.String("sort-by", "", "sort field")
	sortOrder := fs.String("sort-order", "asc", "sort order (asc, desc)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	review := app.Review
	review.SetSearch(*search)
	review.SetStatusFilter(*status)
	review.SetPeriodFilter(*period)
	review.SetFinalizedFilter(*finalized)
	if *sortBy != "" {
		review.SetSort(domain.Sort{Field: *sortBy, Order: domain.SortOrder(*sortOrder)})
	}
	if err := review.SetPerPage(*perPage); err != nil {
		return err
	}
	if err := review.SetPage(*page); err != nil {
		return err
	}

	pageResult, err := review.Load(ctx)
	if err != nil {
		return err
	}
	return printJSON(pageResult)
}

func applicationsDetail(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("applications detail", flag.ContinueOnError)
	id := fs.Int("id", 0, "application id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("applications detail: -id is required")
	}

	detail, err := app.Review.Detail(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(detail)
}

func applicationsSetStatus(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("applications set-status", flag.ContinueOnError)
	id := fs.Int("id", 0, "application id")
	status := fs.String("status", "", "target status")
	catatan := fs.String("catatan", "", "admin note")
	interviewDate := fs.String("interview-date", "", "interview date (YYYY-MM-DD)")
	interviewTime := fs.String("interview-time", "", "interview time (HH:MM)")
	interviewLink := fs.String("interview-link", "", "interview meeting link")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("applications set-status: -id is required")
	}

	parsed, err := domain.ParseApplicationStatus(*status)
	if err != nil {
		return err
	}
	updated, err := app.Review.UpdateStatus(ctx, *id, domain.StatusForm{
		Status:        parsed,
		CatatanAdmin:  *catatan,
		InterviewDate: *interviewDate,
		InterviewTime: *interviewTime,
		InterviewLink: *interviewLink,
	})
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func applicationsBulkStatus(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("applications bulk-status", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma-separated application ids")
	status := fs.String("status", "", "target status")
	catatan := fs.String("catatan", "", "admin note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, err := domain.ParseApplicationStatus(*status)
	if err != nil {
		return err
	}
	idList, err := parseIDs(*ids)
	if err != nil {
		return err
	}
	for _, id := range idList {
		app.Review.Select(id)
	}

	count, err := app.Review.BulkUpdate(ctx, parsed, *catatan)
	if err != nil {
		return err
	}
	fmt.Printf("updated %d applications\n", count)
	return nil
}

func runStatistics(ctx context.Context, app *bootstrap.App) error {
	stats, err := app.Review.Statistics(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runDocs(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("docs: missing subcommand (types, list, upload, delete, preview, probe)")
	}
	switch args[0] {
	case "types":
		types, err := app.Documents.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		return printJSON(types)
	case "list":
		docs, err := app.Documents.Refresh(ctx)
		if err != nil {
			return err
		}
		return printJSON(docs)
	case "upload":
		return docsUpload(ctx, app, args[1:])
	case "delete":
		return docsDelete(ctx, app, args[1:])
	case "preview":
		return docsPreview(ctx, app, args[1:])
	case "probe":
		return docsProbe(ctx, args[1:])
	default:
		return fmt.Errorf("docs: unknown subcommand %q", args[0])
	}
}

type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func docsUpload(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("docs upload", flag.ContinueOnError)
	typeCode := fs.String("type", "", "document type code")
	keterangan := fs.String("keterangan", "", "note attached to each file")
	var files fileList
	fs.Var(&files, "file", "file to upload (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typeCode == "" {
		return fmt.Errorf("docs upload: -type is required")
	}
	if len(files) == 0 {
		return fmt.Errorf("docs upload: at least one -file is required")
	}

	pipeline := app.Documents
	if _, err := pipeline.LoadCatalog(ctx); err != nil {
		return err
	}
	if _, err := pipeline.Refresh(ctx); err != nil {
		return err
	}
	if _, err := pipeline.SelectType(*typeCode); err != nil {
		return err
	}

	if err := pipeline.AddPaths(files...); err != nil {
		return err
	}

	uploaded, err := pipeline.Upload(ctx, *keterangan)
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %d files\n", len(uploaded))
	return printJSON(uploaded)
}

func docsDelete(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("docs delete", flag.ContinueOnError)
	id := fs.Int("id", 0, "document id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("docs delete: -id is required")
	}

	if _, err := app.Documents.Refresh(ctx); err != nil {
		return err
	}
	if err := app.Documents.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted document %d\n", *id)
	return nil
}

func docsPreview(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("docs preview", flag.ContinueOnError)
	id := fs.Int("id", 0, "document id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("docs preview: -id is required")
	}

	docs, err := app.Documents.Refresh(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.ID == *id {
			fmt.Printf("%s: %s\n", doc.FileName, app.Documents.Preview(doc))
			return nil
		}
	}
	return fmt.Errorf("docs preview: %w: document %d", domain.ErrNotFound, *id)
}

func docsProbe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs probe", flag.ContinueOnError)
	path := fs.String("file", "", "local PDF file")
	wait := fs.Duration("wait", 3*time.Second, "parse deadline")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("docs probe: -file is required")
	}

	result, err := pdfprobe.ProbeFile(ctx, *path, *wait)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d pages\n", *path, result.Pages)
	return nil
}

func runExport(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	tables := fs.String("tables", "data_beswan", "comma-separated tables (data_beswan, dokumen_beswan)")
	format := fs.String("format", "excel", "export format (excel, csv, json, zip)")
	dateRange := fs.String("date-range", "", "optional date range filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := app.Export.Run(ctx, splitList(*tables), *format, *dateRange)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d bytes to %s\n", report.Bytes, report.Path)
	for sheet, rows := range report.Sheets {
		fmt.Printf("  sheet %q: %d rows\n", sheet, rows)
	}
	return nil
}

func runMedia(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("media: missing subcommand (get, set)")
	}
	switch args[0] {
	case "get":
		m, err := app.Gateway.LatestMediaSosial(ctx)
		if err != nil {
			return err
		}
		return printJSON(m)
	case "set":
		return mediaSet(ctx, app, args[1:])
	default:
		return fmt.Errorf("media: unknown subcommand %q", args[0])
	}
}

func mediaSet(ctx context.Context, app *bootstrap.App, args []string) error {
	fs := flag.NewFlagSet("media set", flag.ContinueOnError)
	id := fs.Int("id", 0, "existing record id (0 creates a new record)")
	instagram := fs.String("instagram", "", "instagram link")
	facebook := fs.String("facebook", "", "facebook link")
	twitter := fs.String("twitter", "", "twitter link")
	youtube := fs.String("youtube", "", "youtube link")
	linkedin := fs.String("linkedin", "", "linkedin link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record := domain.MediaSosial{
		ID:            *id,
		InstagramLink: *instagram,
		FacebookLink:  *facebook,
		TwitterLink:   *twitter,
		YoutubeLink:   *youtube,
		LinkedinLink:  *linkedin,
	}

	var (
		saved *domain.MediaSosial
		err   error
	)
	if *id > 0 {
		saved, err = app.Gateway.UpdateMediaSosial(ctx, record)
	} else {
		saved, err = app.Gateway.CreateMediaSosial(ctx, record)
	}
	if err != nil {
		return err
	}
	return printJSON(saved)
}

func parseIDs(raw string) ([]int, error) {
	parts := splitList(raw)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no ids given")
	}
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
