package steps

import "github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"

// Steps in this file only apply to providers that test against a live
// Kubernetes cluster.

// InstallKubectl installs kubectl for providers that need it.
func InstallKubectl(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Install Kubectl",
		Run: lines(
			"curl -LO https://storage.googleapis.com/kubernetes-release/release/$(curl -s https://storage.googleapis.com/kubernetes-release/release/stable-1.28.txt)/bin/linux/amd64/kubectl",
			"chmod +x ./kubectl",
			"sudo mv kubectl /usr/local/bin",
			"",
		),
	})
}

// InstallAndConfigureHelm installs Helm and adds the stable chart repository.
func InstallAndConfigureHelm(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Install and configure Helm",
		Run: lines(
			"curl -LO  https://get.helm.sh/helm-v3.8.0-linux-amd64.tar.gz",
			"tar -xvf helm-v3.8.0-linux-amd64.tar.gz",
			"sudo mv linux-amd64/helm /usr/local/bin",
			"helm repo add stable https://charts.helm.sh/stable",
			"helm repo update",
			"",
		),
	})
}

// LoginGoogleCloudRegistry configures docker for the Google container registry.
func LoginGoogleCloudRegistry(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Login to Google Cloud Registry",
		Run:  "gcloud --quiet auth configure-docker",
	})
}

// SetStackName publishes the test stack name as the stackname.stack-name
// output.
func SetStackName(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Set stack name in output",
		ID:   "stackname",
		Run:  `echo 'stack-name=${{ env.PULUMI_TEST_OWNER }}/${{ github.sha }}-${{ github.run_id }}-${{ github.run_attempt }}' >> "$GITHUB_OUTPUT"`,
	})
}

// CreateTestCluster provisions the shared test cluster.
func CreateTestCluster(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Create test infrastructure",
		Run:  "./scripts/ci-cluster-create.sh ${{ steps.stackname.outputs.stack-name }}",
	})
}

// UploadKubernetesArtifacts publishes the test cluster kubeconfig.
func UploadKubernetesArtifacts(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Upload Kubernetes Artifacts",
		Uses: actions.UploadArtifact,
		With: actions.M(
			"name", "config",
			"path", "~/.kube/config",
		),
	})
}

// DestroyTestCluster tears down the stack created by the build-test-cluster
// job.
func DestroyTestCluster(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Destroy test infra",
		Run:  "./scripts/ci-cluster-destroy.sh ${{ needs.build-test-cluster.outputs.stack-name }}",
	})
}

// DeleteArtifact removes the kubeconfig artifact after teardown.
func DeleteArtifact(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Uses: actions.DeleteArtifact,
		With: actions.M("name", "config"),
	})
}

// BuildK8sgen builds the Kubernetes schema generator.
func BuildK8sgen(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Build K8sgen",
		Run:  "make k8sgen",
	})
}

// PrepareOpenAPIFile fetches the OpenAPI document the schema is built from.
func PrepareOpenAPIFile(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Prepare OpenAPI file",
		Run:  "make openapi_file",
	})
}

// MakeKubernetesProvider builds the Kubernetes provider binary.
func MakeKubernetesProvider(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Make Kubernetes provider",
		Run:  "make k8sprovider",
	})
}

// MakeKubeDir and DownloadKubeconfig prepare access to the shared test
// cluster. Workflows that bring up their own KinD cluster skip them.
func MakeKubeDir(sharedCluster bool) *actions.Step {
	if !sharedCluster {
		return nil
	}
	return step(actions.Step{
		Name: "Make Kube Directory",
		Run:  `mkdir -p "~/.kube/"`,
	})
}

// DownloadKubeconfig fetches the shared cluster kubeconfig.
func DownloadKubeconfig(sharedCluster bool) *actions.Step {
	if !sharedCluster {
		return nil
	}
	return step(actions.Step{
		Name: "Download Kubeconfig",
		Uses: actions.DownloadArtifact,
		With: actions.M(
			"name", "config",
			"path", "~/.kube/",
		),
	})
}

// CreateKindCluster starts a per-language KinD cluster.
func CreateKindCluster(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Setup KinD cluster",
		Uses: actions.KindCluster,
		With: actions.M(
			"cluster_name", "kind-integration-tests-${{ matrix.language }}",
			"node_image", "kindest/node:v1.29.2",
		),
	})
}
