package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	extractionsProcessed atomic.Int64
	extractionsFailed    atomic.Int64
	extractionCacheHits  atomic.Int64
	labelerCalls         atomic.Int64
	reportsAssembled     atomic.Int64
	reportsFailed        atomic.Int64
	sectionsParsed       atomic.Int64
)

func IncExtractionsProcessed() { extractionsProcessed.Add(1) }
func IncExtractionsFailed()    { extractionsFailed.Add(1) }
func IncExtractionCacheHits()  { extractionCacheHits.Add(1) }
func IncLabelerCalls()         { labelerCalls.Add(1) }
func IncReportsAssembled()     { reportsAssembled.Add(1) }
func IncReportsFailed()        { reportsFailed.Add(1) }
func IncSectionsParsed()       { sectionsParsed.Add(1) }

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	fmt.Fprintf(w, "# HELP clinscribe_extractions_processed_total Number of transcripts successfully extracted.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_extractions_processed_total counter\n")
	fmt.Fprintf(w, "clinscribe_extractions_processed_total %d\n", extractionsProcessed.Load())

	fmt.Fprintf(w, "# HELP clinscribe_extractions_failed_total Number of extraction attempts that failed.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_extractions_failed_total counter\n")
	fmt.Fprintf(w, "clinscribe_extractions_failed_total %d\n", extractionsFailed.Load())

	fmt.Fprintf(w, "# HELP clinscribe_extraction_cache_hits_total Number of extraction requests served from cache.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_extraction_cache_hits_total counter\n")
	fmt.Fprintf(w, "clinscribe_extraction_cache_hits_total %d\n", extractionCacheHits.Load())

	fmt.Fprintf(w, "# HELP clinscribe_labeler_calls_total Number of calls made to the token-classification model service.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_labeler_calls_total counter\n")
	fmt.Fprintf(w, "clinscribe_labeler_calls_total %d\n", labelerCalls.Load())

	fmt.Fprintf(w, "# HELP clinscribe_reports_assembled_total Number of clinical reports assembled.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_reports_assembled_total counter\n")
	fmt.Fprintf(w, "clinscribe_reports_assembled_total %d\n", reportsAssembled.Load())

	fmt.Fprintf(w, "# HELP clinscribe_reports_failed_total Number of report assembly attempts that failed.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_reports_failed_total counter\n")
	fmt.Fprintf(w, "clinscribe_reports_failed_total %d\n", reportsFailed.Load())

	fmt.Fprintf(w, "# HELP clinscribe_sections_parsed_total Number of narratives segmented into sections.\n")
	fmt.Fprintf(w, "# TYPE clinscribe_sections_parsed_total counter\n")
	fmt.Fprintf(w, "clinscribe_sections_parsed_total %d\n", sectionsParsed.Load())
}
