package kafka

// Topics of the clinical event bus. Transcripts flow in, extraction results
// flow to the report service, failures land on the DLQ.
const (
	TopicTranscripts    = "transcripts"
	TopicExtractions    = "clinical-extractions"
	TopicExtractionsDLQ = "clinical-extractions-dlq"
	TopicReports        = "clinical-reports"
)
