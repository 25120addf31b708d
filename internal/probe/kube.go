package probe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"testctl/internal/check"
)

// NewClientsetForContext creates a Kubernetes clientset for a kubeconfig
// context; an empty name selects the current context. Package-level to allow
// mocking in tests.
var NewClientsetForContext = func(kubeContextName string) (kubernetes.Interface, error) {
	restConfig, err := restConfigForContext(kubeContextName)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset for context %q: %w", kubeContextName, err)
	}
	return clientset, nil
}

// restConfigForContext loads the kubeconfig for a context. No client timeout
// is set; requests are bounded by the invocation context.
func restConfigForContext(kubeContextName string) (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	configOverrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContextName}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config for context %q: %w", kubeContextName, err)
	}
	return restConfig, nil
}

// Kube passes when at least one pod matches Selector in Namespace and every
// matching pod is running and ready.
type Kube struct {
	Context   string
	Namespace string
	Selector  string
}

// Invoke lists the pods. Failing to build a client is an invocation error.
func (k *Kube) Invoke(ctx context.Context) (check.Verdict, error) {
	clientset, err := NewClientsetForContext(k.Context)
	if err != nil {
		return check.Verdict{}, err
	}

	namespace := k.Namespace
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}

	podList, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: k.Selector})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return check.Verdict{}, ctxErr
		}
		return check.Fail("failed to list pods in %s (selector: %s): %v", namespace, k.Selector, err), nil
	}
	if len(podList.Items) == 0 {
		return check.Fail("no pods found in %s (selector: %s)", namespace, k.Selector), nil
	}

	var notReady []string
	for _, pod := range podList.Items {
		if reason := podNotReadyReason(pod); reason != "" {
			notReady = append(notReady, fmt.Sprintf("%s (%s)", pod.Name, reason))
		}
	}
	if len(notReady) > 0 {
		sort.Strings(notReady)
		return check.Fail("%d/%d pods not ready in %s: %s",
			len(notReady), len(podList.Items), namespace, strings.Join(notReady, ", ")), nil
	}

	return check.Pass(fmt.Sprintf("%d/%d pods ready in %s", len(podList.Items), len(podList.Items), namespace)), nil
}

// podNotReadyReason returns "" for a running pod whose Ready condition is true
// and whose containers all report ready.
func podNotReadyReason(pod corev1.Pod) string {
	if pod.Status.Phase != corev1.PodRunning {
		phase := string(pod.Status.Phase)
		if phase == "" {
			phase = string(corev1.PodUnknown)
		}
		return "phase " + phase
	}

	isReady := false
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady && cond.Status == corev1.ConditionTrue {
			isReady = true
			break
		}
	}
	if !isReady {
		return "not ready"
	}

	if len(pod.Status.ContainerStatuses) == 0 && len(pod.Spec.Containers) > 0 {
		// Running but container statuses not reported yet
		return "containers initializing"
	}
	for _, cs := range pod.Status.ContainerStatuses {
		if !cs.Ready {
			return fmt.Sprintf("container %s not ready", cs.Name)
		}
	}
	return ""
}
