package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by the CLI commands.
type ServiceContainer struct {
	Evaluator  ReconciliationSvc
	Baseline   BaselineSvc
	Draft      DraftSvc
	Visibility VisibilitySvc
	Commit     CommitSvc
	Editor     EditorSvc
}
