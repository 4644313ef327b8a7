package lattice

import "time"

// JobStatus is the lifecycle state of a remote job (recommendation,
// training, or tuning). Jobs move PENDING → IN_PROGRESS → one of the three
// terminal states; the only way to observe a transition is to describe the
// job again.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusStopped    JobStatus = "STOPPED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether the status is a terminal state.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusStopped, JobStatusFailed:
		return true
	}
	return false
}

// EndpointStatus is the lifecycle state of a serving endpoint.
type EndpointStatus string

const (
	EndpointStatusCreating  EndpointStatus = "CREATING"
	EndpointStatusInService EndpointStatus = "IN_SERVICE"
	EndpointStatusFailed    EndpointStatus = "FAILED"
	EndpointStatusDeleting  EndpointStatus = "DELETING"
)

// --- Registry ---

// CreateModelGroupRequest is the request body for POST /registry/groups.
type CreateModelGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ModelGroup is a named grouping of model package versions.
type ModelGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InferenceSpec describes how a registered model is served: the container
// image, the framework it was exported from, and the content types and
// instance types the platform may benchmark it on.
type InferenceSpec struct {
	Image                  string   `json:"image"`
	Framework              string   `json:"framework"`
	FrameworkVersion       string   `json:"framework_version"`
	NearestModelName       string   `json:"nearest_model_name,omitempty"`
	SupportedContentTypes  []string `json:"supported_content_types"`
	SupportedResponseTypes []string `json:"supported_response_types,omitempty"`
	SupportedInstanceTypes []string `json:"supported_instance_types"`
	ModelDataURI           string   `json:"model_data_uri"`
}

// CreateModelPackageRequest is the request body for POST /registry/packages.
type CreateModelPackageRequest struct {
	GroupName        string        `json:"group_name"`
	Domain           string        `json:"domain"`
	Task             string        `json:"task"`
	SamplePayloadURI string        `json:"sample_payload_uri"`
	Inference        InferenceSpec `json:"inference"`
	ApprovalStatus   string        `json:"approval_status,omitempty"`
}

// ModelPackage is a versioned, immutable registry entry for one model.
type ModelPackage struct {
	ID        string    `json:"id"`
	GroupName string    `json:"group_name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Recommendation jobs ---

// RecommendationJobType selects automatic benchmarking or a custom load test.
type RecommendationJobType string

const (
	RecommendationJobDefault  RecommendationJobType = "Default"
	RecommendationJobAdvanced RecommendationJobType = "Advanced"
)

// TrafficPhase describes one step of synthetic user ramp-up.
type TrafficPhase struct {
	InitialUsers    int `json:"initial_users"`
	SpawnRate       int `json:"spawn_rate"`
	DurationSeconds int `json:"duration_seconds"`
}

// LatencyThreshold bounds a latency percentile during a load test.
type LatencyThreshold struct {
	Percentile string `json:"percentile"` // e.g. "P99"
	ValueMs    int    `json:"value_ms"`
}

// StoppingConditions tell the platform when to end a custom load test.
type StoppingConditions struct {
	MaxInvocations    int                `json:"max_invocations,omitempty"`
	LatencyThresholds []LatencyThreshold `json:"latency_thresholds,omitempty"`
}

// EnvironmentRange is a sweep over values of one container environment
// variable (e.g. OMP_NUM_THREADS over "2", "4", "8").
type EnvironmentRange struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// EndpointCandidate is one instance type the platform should benchmark,
// optionally crossed with environment-variable sweeps.
type EndpointCandidate struct {
	InstanceType string             `json:"instance_type"`
	Environment  []EnvironmentRange `json:"environment,omitempty"`
}

// ResourceLimit bounds how many load tests an advanced job may run.
type ResourceLimit struct {
	MaxTests         int `json:"max_tests,omitempty"`
	MaxParallelTests int `json:"max_parallel_tests,omitempty"`
}

// RecommendationInput is the job input configuration.
type RecommendationInput struct {
	PackageID          string              `json:"package_id"`
	JobDurationSeconds int                 `json:"job_duration_seconds,omitempty"`
	Candidates         []EndpointCandidate `json:"candidates,omitempty"`
	Traffic            []TrafficPhase      `json:"traffic,omitempty"`
	ResourceLimit      *ResourceLimit      `json:"resource_limit,omitempty"`
}

// CreateRecommendationJobRequest is the request body for POST /recommendations.
type CreateRecommendationJobRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Type        RecommendationJobType `json:"type"`
	Role        string                `json:"role"`
	Input       RecommendationInput   `json:"input"`
	Stopping    *StoppingConditions   `json:"stopping,omitempty"`
}

// EndpointSummary identifies one endpoint a recommendation job provisioned.
type EndpointSummary struct {
	EndpointName string `json:"endpoint_name"`
	VariantName  string `json:"variant_name"`
}

// RecommendationEndpointConfig is the endpoint half of a recommendation.
type RecommendationEndpointConfig struct {
	EndpointName         string            `json:"endpoint_name"`
	VariantName          string            `json:"variant_name"`
	InstanceType         string            `json:"instance_type"`
	InitialInstanceCount int               `json:"initial_instance_count"`
	Environment          map[string]string `json:"environment,omitempty"`
}

// RecommendationModelConfig is the model half of a recommendation.
type RecommendationModelConfig struct {
	PackageID             string            `json:"package_id"`
	EnvironmentParameters map[string]string `json:"environment_parameters,omitempty"`
}

// RecommendationMetrics are the measured results for one configuration.
type RecommendationMetrics struct {
	CostPerHour      float64 `json:"cost_per_hour"`
	CostPerInference float64 `json:"cost_per_inference"`
	MaxInvocations   int     `json:"max_invocations"`
	ModelLatencyMs   int     `json:"model_latency_ms"`
}

// Recommendation is one benchmarked configuration with its measurements.
type Recommendation struct {
	EndpointConfig RecommendationEndpointConfig `json:"endpoint_config"`
	ModelConfig    RecommendationModelConfig    `json:"model_config"`
	Metrics        RecommendationMetrics        `json:"metrics"`
}

// RecommendationJob is the described state of a recommendation job.
type RecommendationJob struct {
	Name            string                `json:"name"`
	Description     string                `json:"description,omitempty"`
	Type            RecommendationJobType `json:"type"`
	Status          JobStatus             `json:"status"`
	FailureReason   string                `json:"failure_reason,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
	Endpoints       []EndpointSummary     `json:"endpoints,omitempty"`
	Recommendations []Recommendation      `json:"recommendations,omitempty"`
}

// --- Training and tuning jobs ---

// MetricDefinition tells the platform how to scrape one metric out of the
// training container's log stream. The regex contract is imposed by the
// platform; the first capture group must match a float.
type MetricDefinition struct {
	Name  string `json:"name"`
	Regex string `json:"regex"`
}

// AlgorithmSpec describes the training container.
type AlgorithmSpec struct {
	Image             string             `json:"image"`
	InputMode         string             `json:"input_mode"` // "File" or "Pipe"
	MetricDefinitions []MetricDefinition `json:"metric_definitions,omitempty"`
}

// Channel is one named training input (e.g. "train", "test").
type Channel struct {
	Name        string `json:"name"`
	DataURI     string `json:"data_uri"`
	ContentType string `json:"content_type,omitempty"`
}

// ResourceConfig is the compute requested for a training job.
type ResourceConfig struct {
	InstanceType  string `json:"instance_type"`
	InstanceCount int    `json:"instance_count"`
	VolumeSizeGB  int    `json:"volume_size_gb"`
}

// StoppingCondition bounds a training job's runtime.
type StoppingCondition struct {
	MaxRuntimeSeconds int `json:"max_runtime_seconds"`
}

// CreateTrainingJobRequest is the request body for POST /training-jobs.
type CreateTrainingJobRequest struct {
	Name             string            `json:"name"`
	Hyperparameters  map[string]string `json:"hyperparameters,omitempty"`
	Algorithm        AlgorithmSpec     `json:"algorithm"`
	Role             string            `json:"role"`
	Channels         []Channel         `json:"channels"`
	OutputURI        string            `json:"output_uri"`
	Resources        ResourceConfig    `json:"resources"`
	Stopping         StoppingCondition `json:"stopping"`
	NetworkIsolation bool              `json:"network_isolation,omitempty"`
}

// MetricValue is one final metric reported by a finished training job.
type MetricValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TrainingJob is the described state of a training job.
type TrainingJob struct {
	Name          string        `json:"name"`
	Status        JobStatus     `json:"status"`
	FailureReason string        `json:"failure_reason,omitempty"`
	ArtifactURI   string        `json:"artifact_uri,omitempty"`
	FinalMetrics  []MetricValue `json:"final_metrics,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// IntegerRange declares an integer hyperparameter to sweep.
type IntegerRange struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// CategoricalRange declares a categorical hyperparameter to sweep.
type CategoricalRange struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ParameterRanges groups all swept hyperparameters of a tuning job.
type ParameterRanges struct {
	Integer     []IntegerRange     `json:"integer,omitempty"`
	Categorical []CategoricalRange `json:"categorical,omitempty"`
}

// ObjectiveMetric is the quantity a tuning sweep optimizes.
type ObjectiveMetric struct {
	Name  string `json:"name"`
	Regex string `json:"regex"`
	Goal  string `json:"goal"` // "Maximize" or "Minimize"
}

// TrainingJobDefinition is the per-trial job template of a tuning sweep:
// everything a training job needs except the name (issued per trial) and the
// swept hyperparameters.
type TrainingJobDefinition struct {
	StaticHyperparameters map[string]string `json:"static_hyperparameters,omitempty"`
	Algorithm             AlgorithmSpec     `json:"algorithm"`
	Role                  string            `json:"role"`
	Channels              []Channel         `json:"channels"`
	OutputURI             string            `json:"output_uri"`
	Resources             ResourceConfig    `json:"resources"`
	Stopping              StoppingCondition `json:"stopping"`
}

// CreateTuningJobRequest is the request body for POST /tuning-jobs.
type CreateTuningJobRequest struct {
	Name            string                `json:"name"`
	Ranges          ParameterRanges       `json:"ranges"`
	Objective       ObjectiveMetric       `json:"objective"`
	MaxJobs         int                   `json:"max_jobs"`
	MaxParallelJobs int                   `json:"max_parallel_jobs"`
	Definition      TrainingJobDefinition `json:"definition"`
}

// TrainingJobSummary is a tuning trial's outcome.
type TrainingJobSummary struct {
	Name                 string            `json:"name"`
	Status               JobStatus         `json:"status"`
	ObjectiveValue       float64           `json:"objective_value"`
	TunedHyperparameters map[string]string `json:"tuned_hyperparameters,omitempty"`
}

// TrainingJobCounts summarizes trial states of a tuning job.
type TrainingJobCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Failed     int `json:"failed"`
	Stopped    int `json:"stopped"`
}

// TuningJob is the described state of a hyperparameter tuning job.
type TuningJob struct {
	Name            string              `json:"name"`
	Status          JobStatus           `json:"status"`
	FailureReason   string              `json:"failure_reason,omitempty"`
	BestTrainingJob *TrainingJobSummary `json:"best_training_job,omitempty"`
	Counts          TrainingJobCounts   `json:"counts"`
	CreatedAt       time.Time           `json:"created_at"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
}

// --- Models and endpoints ---

// CreateModelRequest is the request body for POST /models: a servable
// reference binding a container image to a trained artifact.
type CreateModelRequest struct {
	Name         string            `json:"name"`
	Image        string            `json:"image"`
	ModelDataURI string            `json:"model_data_uri"`
	Environment  map[string]string `json:"environment,omitempty"`
}

// Model is a servable model reference.
type Model struct {
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	ModelDataURI string    `json:"model_data_uri"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateEndpointRequest is the request body for POST /endpoints.
type CreateEndpointRequest struct {
	Name          string `json:"name"`
	ModelName     string `json:"model_name"`
	InstanceType  string `json:"instance_type"`
	InstanceCount int    `json:"instance_count"`
}

// Endpoint is the described state of a serving endpoint. An endpoint bills
// until explicitly deleted; the client never tears one down implicitly.
type Endpoint struct {
	Name          string         `json:"name"`
	ModelName     string         `json:"model_name"`
	Status        EndpointStatus `json:"status"`
	FailureReason string         `json:"failure_reason,omitempty"`
	InstanceType  string         `json:"instance_type"`
	InstanceCount int            `json:"instance_count"`
	CreatedAt     time.Time      `json:"created_at"`
}

// --- Metrics ---

// MetricQuery requests time series for one endpoint over a window.
type MetricQuery struct {
	EndpointName  string    `json:"endpoint_name"`
	MetricNames   []string  `json:"metric_names"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PeriodSeconds int       `json:"period_seconds,omitempty"`
}

// MetricPoint is one sample of a metric series.
type MetricPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MetricSeries is one named series for one endpoint.
type MetricSeries struct {
	Endpoint string        `json:"endpoint"`
	Metric   string        `json:"metric"`
	Points   []MetricPoint `json:"points"`
}

// --- Uploads ---

// PresignUploadRequest asks the control plane for a one-shot object-storage
// upload URL.
type PresignUploadRequest struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type,omitempty"`
	SHA256      string `json:"sha256"`
	SizeBytes   int64  `json:"size_bytes"`
}

// PresignUploadResponse carries the upload URL and the durable storage URI
// downstream calls should reference.
type PresignUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageURI string    `json:"storage_uri"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// --- Version ---

// VersionInfo is the CLI version metadata advertised by the control plane.
type VersionInfo struct {
	Latest  string `json:"latest"`
	Minimum string `json:"minimum"`
}
