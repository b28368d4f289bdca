package models

const (
	DataSourceManual       = "manual"
	DataSourceCustomParser = "custom_parser"
	DataSourceFolder       = "folder_metadata"
	DataSourceDocument     = "document_metadata"
	DataSourceFilepath     = "filepath"
	DataSourceDefault      = "default"
)

// Lower priority means that we respect it more than higher priority. Manual
// edits outrank every extractor; an ingest upsert still replaces them since
// re-ingesting is an explicit choice.
const (
	DataSourceManualPriority = iota
	DataSourceCustomParserPriority
	DataSourceFolderPriority
	DataSourceDocumentPriority
	DataSourceFilepathPriority
	DataSourceDefaultPriority
)

var DataSourcePriority = map[string]int{
	DataSourceManual:       DataSourceManualPriority,
	DataSourceCustomParser: DataSourceCustomParserPriority,
	DataSourceFolder:       DataSourceFolderPriority,
	DataSourceDocument:     DataSourceDocumentPriority,
	DataSourceFilepath:     DataSourceFilepathPriority,
	DataSourceDefault:      DataSourceDefaultPriority,
}
