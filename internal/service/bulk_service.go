package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"enrichly/internal/config"
	"enrichly/internal/domain"
	"enrichly/internal/port"
	"enrichly/internal/tabular"
)

const (
	defaultBatchSize       = 50
	estimatedSecondsPerRow = 2
	artifactNamePrefix     = "enriched_data"
)

// Input column names recognized in bulk files. Only the part number is
// mandatory.
const (
	colPartNumber   = "mfg_part_number"
	colManufacturer = "manufacturer_name"
	colCategory     = "category_gen"
	colSubcategory  = "sub_category_gen"
	colAttributes   = "attributes_to_extract"
)

// resultColumns are pre-created on the output table so every row renders
// them whether populated or not. Per-attribute attr_* columns and the
// error column are created lazily as rows produce them.
var resultColumns = []string{
	"attributes_json",
	"confidence",
	"processing_time",
	"raw_gemini_response",
	"requested_attributes",
	"input_tokens",
	"output_tokens",
	"total_tokens",
	"cost_inr",
}

// BulkEnrichInput is the DTO for starting a bulk enrichment run.
type BulkEnrichInput struct {
	Filename      string
	File          io.Reader
	IncludeImages bool
	BatchSize     int
	Format        domain.TableFormat
}

// BulkEnrichResult describes an accepted bulk job.
type BulkEnrichResult struct {
	TaskID               string
	TotalRows            int
	BatchSize            int
	EstimatedTimeSeconds int
}

// BulkService defines the bulk enrichment contract.
type BulkService interface {
	// StartBulkEnrichment validates the upload, then processes it in the
	// background. The returned result only acknowledges acceptance.
	StartBulkEnrichment(ctx context.Context, input *BulkEnrichInput) (*BulkEnrichResult, error)
	// RunToCompletion processes the upload synchronously and returns the
	// saved artifact location.
	RunToCompletion(ctx context.Context, input *BulkEnrichInput) (string, error)
}

type bulkService struct {
	enricher EnrichmentService
	store    port.ArtifactStore
	cfg      config.EnrichmentConfig
}

// NewBulkService creates a BulkService implementation.
func NewBulkService(enricher EnrichmentService, store port.ArtifactStore, cfg config.EnrichmentConfig) BulkService {
	return &bulkService{enricher: enricher, store: store, cfg: cfg}
}

// bulkJob carries one prepared run: the parsed source table, bound column
// indexes, and processing parameters.
type bulkJob struct {
	taskID        string
	source        *tabular.Source
	includeImages bool
	batchSize     int
	format        domain.TableFormat
	cols          columnIndexes
}

type columnIndexes struct {
	partNumber   int
	manufacturer int
	category     int
	subcategory  int
	attributes   int
}

type rowResult struct {
	record *domain.EnrichmentRecord
	err    error
}

func (s *bulkService) StartBulkEnrichment(ctx context.Context, input *BulkEnrichInput) (*BulkEnrichResult, error) {
	job, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	log.Printf("bulkService: [%s] accepted %d rows (batch=%d, images=%t)",
		job.taskID, len(job.source.Records), job.batchSize, job.includeImages)

	// The job outlives the request. It runs on a background context and
	// reports through logs and the saved artifact; client disconnects
	// must not cancel it.
	go func() {
		if _, err := s.run(context.Background(), job); err != nil {
			log.Printf("bulkService: [%s] background run failed: %v", job.taskID, err)
		}
	}()

	return &BulkEnrichResult{
		TaskID:               job.taskID,
		TotalRows:            len(job.source.Records),
		BatchSize:            job.batchSize,
		EstimatedTimeSeconds: len(job.source.Records) * estimatedSecondsPerRow,
	}, nil
}

func (s *bulkService) RunToCompletion(ctx context.Context, input *BulkEnrichInput) (string, error) {
	job, err := s.prepare(input)
	if err != nil {
		return "", err
	}
	return s.run(ctx, job)
}

// prepare parses and validates the upload and fixes the run parameters.
func (s *bulkService) prepare(input *BulkEnrichInput) (*bulkJob, error) {
	source, err := tabular.Read(input.Filename, input.File)
	if err != nil {
		return nil, err
	}
	if source.Column(colPartNumber) < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, colPartNumber)
	}

	if len(source.Records) > s.cfg.MaxRowsToProcess {
		log.Printf("bulkService: truncating input from %d to %d rows", len(source.Records), s.cfg.MaxRowsToProcess)
		source.Records = source.Records[:s.cfg.MaxRowsToProcess]
	}

	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if batchSize > s.cfg.MaxBatchSize {
		batchSize = s.cfg.MaxBatchSize
	}

	format := input.Format
	if format == "" {
		format = domain.TableFormatXLSX
	}
	if format != domain.TableFormatCSV && format != domain.TableFormatXLSX {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, format)
	}

	return &bulkJob{
		taskID:        "task-" + uuid.New().String(),
		source:        source,
		includeImages: input.IncludeImages,
		batchSize:     batchSize,
		format:        format,
		cols: columnIndexes{
			partNumber:   source.Column(colPartNumber),
			manufacturer: source.Column(colManufacturer),
			category:     source.Column(colCategory),
			subcategory:  source.Column(colSubcategory),
			attributes:   source.Column(colAttributes),
		},
	}, nil
}

func (s *bulkService) run(ctx context.Context, job *bulkJob) (string, error) {
	started := time.Now()
	records := job.source.Records
	log.Printf("bulkService: [%s] starting processing of %d rows", job.taskID, len(records))

	table := s.newOutputTable(job)

	var totals domain.TokenUsage
	processed, failed := 0, 0

	for start := 0; start < len(records); start += job.batchSize {
		end := start + job.batchSize
		if end > len(records) {
			end = len(records)
		}
		log.Printf("bulkService: [%s] processing batch %d-%d", job.taskID, start, end)

		results := s.runWindow(ctx, job, start, end)

		// Fold below the barrier: every row in the window is done, so
		// the table and totals are only ever touched from this
		// goroutine.
		for i := range results {
			idx := start + i
			if results[i].err != nil {
				failed++
				table.Set(idx, "error", results[i].err.Error())
				log.Printf("bulkService: [%s] row %d failed: %v", job.taskID, idx, results[i].err)
				continue
			}
			processed++
			writeRecord(table, idx, results[i].record)
			if s.cfg.EnableTokenTracking {
				totals = totals.Add(results[i].record.TokenData)
			}
		}
	}

	appendSummary(table, totals)

	location, err := s.saveArtifact(ctx, job, table)
	if err != nil {
		return "", err
	}

	log.Printf("bulkService: [%s] finished %d rows (%d failed) in %s: %s",
		job.taskID, processed+failed, failed, time.Since(started).Round(time.Millisecond), location)
	log.Printf("bulkService: [%s] total tokens: %d input, %d output, cost ₹%.6f",
		job.taskID, totals.InputTokens, totals.OutputTokens, totals.CostINR)
	return location, nil
}

// newOutputTable copies the input table and pre-creates the result
// columns. The image_url column only exists when images were requested.
func (s *bulkService) newOutputTable(job *bulkJob) *tabular.Table {
	table := tabular.NewTable()
	for _, name := range job.source.Header {
		if name != "" {
			table.EnsureColumn(name)
		}
	}
	if job.includeImages {
		table.EnsureColumn("image_url")
	}
	for _, col := range resultColumns {
		table.EnsureColumn(col)
	}

	for _, record := range job.source.Records {
		idx := table.AppendRow()
		for j, value := range record {
			if j >= len(job.source.Header) || job.source.Header[j] == "" {
				continue
			}
			table.Set(idx, job.source.Header[j], value)
		}
	}
	return table
}

// runWindow fans the window's rows out concurrently and blocks until every
// row has finished. The window is the pipeline's only admission control:
// nothing outside it is ever in flight.
func (s *bulkService) runWindow(ctx context.Context, job *bulkJob, start, end int) []rowResult {
	results := make([]rowResult, end-start)
	var wg sync.WaitGroup

	for idx := start; idx < end; idx++ {
		input := s.bindRow(job, idx)

		wg.Add(1)
		go func(slot int, in *EnrichInput) {
			defer wg.Done()
			record, err := s.enricher.Enrich(ctx, in)
			results[slot] = rowResult{record: record, err: err}
		}(idx-start, input)
	}

	wg.Wait()
	return results
}

func (s *bulkService) bindRow(job *bulkJob, idx int) *EnrichInput {
	record := job.source.Records[idx]
	return &EnrichInput{
		MPN:                 tabular.Cell(record, job.cols.partNumber),
		Manufacturer:        tabular.Cell(record, job.cols.manufacturer),
		Category:            tabular.Cell(record, job.cols.category),
		Subcategory:         tabular.Cell(record, job.cols.subcategory),
		RequestedAttributes: splitAttributeList(tabular.Cell(record, job.cols.attributes)),
		IncludeImages:       job.includeImages,
		RequestID:           fmt.Sprintf("%s-row%d", job.taskID, idx),
	}
}

// writeRecord flattens one enrichment record into its table row. Attribute
// keys are written in sorted order so column accretion is deterministic.
func writeRecord(table *tabular.Table, idx int, record *domain.EnrichmentRecord) {
	if record.ImageURL != "" {
		table.Set(idx, "image_url", record.ImageURL)
	}
	table.Set(idx, "raw_gemini_response", record.RawResponse)
	if len(record.RequestedAttributes) > 0 {
		table.Set(idx, "requested_attributes", strings.Join(record.RequestedAttributes, ","))
	}
	table.Set(idx, "input_tokens", record.TokenData.InputTokens)
	table.Set(idx, "output_tokens", record.TokenData.OutputTokens)
	table.Set(idx, "total_tokens", record.TokenData.TotalTokens)
	table.Set(idx, "cost_inr", record.TokenData.CostINR)

	attributesJSON, err := json.Marshal(record.Attributes)
	if err != nil {
		attributesJSON = []byte("{}")
	}
	table.Set(idx, "attributes_json", string(attributesJSON))
	table.Set(idx, "confidence", string(record.Confidence))
	table.Set(idx, "processing_time", record.ProcessingTimeSeconds)

	keys := make([]string, 0, len(record.Attributes))
	for key := range record.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		table.Set(idx, attributeColumn(key), cellValue(record.Attributes[key]))
	}
}

// appendSummary marks every data row and appends the totals row. An empty
// table stays empty: no summary row, no is_summary column.
func appendSummary(table *tabular.Table, totals domain.TokenUsage) {
	if table.Len() == 0 {
		return
	}
	for row := 0; row < table.Len(); row++ {
		table.Set(row, "is_summary", false)
	}
	idx := table.AppendRow()
	table.Set(idx, colPartNumber, "SUMMARY")
	table.Set(idx, "input_tokens", totals.InputTokens)
	table.Set(idx, "output_tokens", totals.OutputTokens)
	table.Set(idx, "total_tokens", totals.TotalTokens)
	table.Set(idx, "cost_inr", totals.CostINR)
	table.Set(idx, "is_summary", true)
}

func (s *bulkService) saveArtifact(ctx context.Context, job *bulkJob, table *tabular.Table) (string, error) {
	filename := tabular.ArtifactFilename(artifactNamePrefix, job.format)

	var buf bytes.Buffer
	if err := tabular.Write(table, job.format, &buf); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrArtifactSave, err)
	}
	location, err := s.store.Save(ctx, filename, &buf, tabular.ContentType(job.format))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrArtifactSave, err)
	}
	return location, nil
}

// attributeColumn converts an attribute name to its output column name:
// lowercased, spaces to underscores, attr_ prefixed.
func attributeColumn(key string) string {
	return "attr_" + strings.ReplaceAll(strings.ToLower(key), " ", "_")
}

// cellValue renders an extracted attribute value for a spreadsheet cell.
// Scalars pass through; structured values are stored as JSON text.
func cellValue(v any) any {
	switch v.(type) {
	case nil, string, bool, int, float64:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

func splitAttributeList(raw string) []string {
	if raw == "" {
		return nil
	}
	var attrs []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			attrs = append(attrs, part)
		}
	}
	return attrs
}
