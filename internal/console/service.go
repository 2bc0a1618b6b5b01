package console

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/chainguard-dev/clog"

	awsec2 "tasnim.dev/gamebox/internal/aws/ec2"
	"tasnim.dev/gamebox/internal/config"
	"tasnim.dev/gamebox/internal/credential"
)

type InstanceController interface {
	DescribeInstance(ctx context.Context, instanceID string) (awsec2.Instance, error)
	StartInstance(ctx context.Context, instanceID string) (awsec2.StateChange, error)
	StopInstance(ctx context.Context, instanceID string) (awsec2.StateChange, error)
	PasswordData(ctx context.Context, instanceID string) (string, error)
}

type SecurityGroupController interface {
	IngressPermissions(ctx context.Context, groupID string) ([]types.IpPermission, error)
	RevokeIngress(ctx context.Context, groupID string, perms []types.IpPermission) error
	AuthorizeAddress(ctx context.Context, groupID, cidr string) error
}

type ParameterReader interface {
	SecureString(ctx context.Context, name string) (string, error)
}

// Deps are the collaborators a Service drives.
type Deps struct {
	Instances  InstanceController
	Groups     SecurityGroupController
	Parameters ParameterReader
	// Passwords defaults to a fresh cache.
	Passwords *credential.Cache
	// Metrics is optional.
	Metrics *Metrics
	// RedactStack empties the stack of failure responses.
	RedactStack bool
}

// Service is the control plane for one managed instance.
type Service struct {
	target      config.Target
	instances   InstanceController
	groups      SecurityGroupController
	params      ParameterReader
	passwords   *credential.Cache
	metrics     *Metrics
	redactStack bool
}

func NewService(target config.Target, deps Deps) *Service {
	passwords := deps.Passwords
	if passwords == nil {
		passwords = credential.NewCache()
	}
	return &Service{
		target:      target,
		instances:   deps.Instances,
		groups:      deps.Groups,
		params:      deps.Parameters,
		passwords:   passwords,
		metrics:     deps.Metrics,
		redactStack: deps.RedactStack,
	}
}

// Request is an inbound call. Event is echoed back verbatim.
type Request struct {
	Method   string
	Body     []byte
	SourceIP string
	Event    any
}

// Response is the success envelope.
type Response struct {
	Status
	RequestIP string `json:"requestIp"`
	Event     any    `json:"event"`
}

// Failure is the error envelope.
type Failure struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// Result carries exactly one of Response or Failure.
type Result struct {
	StatusCode int
	Response   *Response
	Failure    *Failure
	Err        error
}

// Body returns the envelope to serialize.
func (r Result) Body() any {
	if r.Failure != nil {
		return r.Failure
	}
	return r.Response
}

// Dispatch runs the action carried by a write request, then recomputes the
// status. The status is recomputed even when the action failed; a failure
// from either step turns the whole request into a Failure.
func (s *Service) Dispatch(ctx context.Context, req Request) Result {
	start := time.Now()
	name := "status"
	log := clog.FromContext(ctx)

	var actionErr error
	if IsWriteMethod(req.Method) {
		action, err := ParseAction(req.Body)
		if err != nil {
			name = "invalid"
			actionErr = err
		} else {
			name = action.Name()
			log = log.With("action", name)
			actionErr = s.Perform(clog.WithLogger(ctx, log), action)
		}
	}

	status, statusErr := s.Status(ctx)

	err := actionErr
	if err == nil {
		err = statusErr
	}
	s.metrics.observe(name, err, time.Since(start))

	if err != nil {
		log.Error("request failed", "error", err, "kind", KindOf(err).String())
		if actionErr != nil && statusErr == nil {
			log.Info("status after failure", "state", status.InstanceState, "client_ip", status.ClientIP)
		}
		return s.failure(err)
	}

	log.Info("request served", "state", status.InstanceState, "duration", time.Since(start))
	return Result{
		StatusCode: http.StatusOK,
		Response: &Response{
			Status:    status,
			RequestIP: req.SourceIP,
			Event:     req.Event,
		},
	}
}

func (s *Service) failure(err error) Result {
	f := &Failure{Message: err.Error()}
	if !s.redactStack {
		f.Stack = StackOf(err)
	}
	return Result{StatusCode: http.StatusInternalServerError, Failure: f, Err: err}
}

// Perform runs a single action to completion.
func (s *Service) Perform(ctx context.Context, action Action) error {
	switch a := action.(type) {
	case UpdateToMe:
		return s.UpdateToMe(ctx, a.IPAddress)
	case Start:
		return s.Start(ctx)
	case Stop:
		return s.Stop(ctx)
	case RetrievePassword:
		return s.RetrievePassword(ctx)
	case nil:
		return unknownAction("")
	default:
		return unknownAction(action.Name())
	}
}
