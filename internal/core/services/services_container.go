package services

import (
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, baselineOpts ...BaselineServiceOption) (*portssvc.ServiceContainer, error) {
	registry, err := rules.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	ownership, err := rules.DefaultOwnership()
	if err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}

	// Drafts are shared by the baseline, commit and editor services
	container.Draft = NewDraftService(repos.Store)
	container.Evaluator = NewReconciliationService(registry)
	container.Visibility = NewVisibilityService(repos.Store)
	container.Baseline = NewBaselineService(repos.ProfileRepo, repos.PeriodReportRepo, container.Draft, ownership, baselineOpts...)
	container.Commit = NewCommitService(repos.Committer, container.Draft, ownership)
	container.Editor = NewEditorService(container.Baseline, container.Evaluator, container.Draft, container.Commit)

	return container, nil
}
