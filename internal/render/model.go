package render

// GroupSummary is one row of the overview table.
type GroupSummary struct {
	ID              int
	FunctionName    string
	HasFunctionName bool
	HasLog          bool
	HasIR           bool
}

// IndexModel is the data handed to the index template.
type IndexModel struct {
	Groups        []GroupSummary
	FunctionNames []string
}

// PageModel is the data handed to the page template. HasLog and HasIR report
// whether the artifact file exists; a read failure still counts as present
// and its content is the diagnostic text.
type PageModel struct {
	ID              int
	FunctionName    string
	HasFunctionName bool
	LogContent      string
	IRContent       string
	HasLog          bool
	HasIR           bool
}
