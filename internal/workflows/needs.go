package workflows

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/jobs"
)

// dependencies lists, per role, every role it waits for when that role is
// part of the workflow. Order within needs is the rendered order.
var dependencies = []struct {
	id    string
	needs []string
}{
	{jobs.BuildSDKsID, []string{jobs.PrerequisitesID}},
	{jobs.TestID, []string{jobs.BuildSDKsID, jobs.BuildTestClusterID}},
	{jobs.DestroyTestClusterID, []string{jobs.BuildTestClusterID, jobs.TestID}},
	{jobs.PublishID, []string{jobs.TestID, jobs.LintID}},
	{jobs.PublishSDKID, []string{jobs.PublishID}},
	{jobs.PublishGoSDKID, []string{jobs.PublishSDKID}},
	{jobs.DispatchDocsBuildID, []string{jobs.PublishGoSDKID}},
	{jobs.SentinelID, []string{jobs.TestID, jobs.LintID, jobs.DestroyTestClusterID}},
}

// Thread sets the needs of every known role from the roles actually present
// in w, so an omitted optional role is never referenced.
func Thread(w actions.Workflow) actions.Workflow {
	for _, dep := range dependencies {
		j, ok := w.Job(dep.id)
		if !ok {
			continue
		}
		var needs []string
		for _, n := range dep.needs {
			if w.HasJob(n) {
				needs = append(needs, n)
			}
		}
		w = w.WithJob(j.WithNeeds(needs...))
	}
	return w
}
