package sessionkit

import (
	"context"
	"net/http"

	"github.com/ledgerfront/sessionkit/internal/wire"
	"github.com/ledgerfront/sessionkit/tokenstore"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type validationResponse struct {
	ValidationErrors ValidationErrors `json:"validationErrors"`
	Errors           ValidationErrors `json:"errors"`
}

// Login authenticates against the backend and, on success, persists the
// returned token pair. Every outcome is a FlowResult; Login never panics
// and never returns a Go error to branch on.
func (s *Session) Login(ctx context.Context, email, password string) FlowResult {
	resp, err := s.api.Post(ctx, s.cfg.Endpoints.LoginPath, credentialsRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		s.metricInc(MetricLoginFailure)
		s.emitLoginFailure(ctx, email, msgNetworkError)
		return FlowResult{Error: msgNetworkError}
	}

	if resp.Success() {
		return s.flowSucceeded(ctx, email, resp, EventLoginSuccess, EventLoginFailure, MetricLoginSuccess, MetricLoginFailure, msgLoginFailed)
	}

	result := s.classifyLoginFailure(resp)
	s.metricInc(MetricLoginFailure)
	s.emitLoginFailure(ctx, email, result.Error)
	return result
}

func (s *Session) classifyLoginFailure(resp *wire.Response) FlowResult {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return FlowResult{Error: msgInvalidCredentials}
	case http.StatusForbidden:
		return FlowResult{Error: msgAccountDisabled}
	case http.StatusBadRequest:
		return validationResult(resp)
	default:
		return FlowResult{Error: serverMessage(resp, msgLoginFailed)}
	}
}

// Register creates an account. The backend signals success with 201
// specifically, not 2xx-generic; a 409 means the email is taken, with the
// server's own message preferred when it supplies one.
func (s *Session) Register(ctx context.Context, email, password string) FlowResult {
	resp, err := s.api.Post(ctx, s.cfg.Endpoints.RegisterPath, credentialsRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		s.metricInc(MetricRegisterFailure)
		s.emitRegisterFailure(ctx, email, msgNetworkError)
		return FlowResult{Error: msgNetworkError}
	}

	if resp.StatusCode == http.StatusCreated {
		return s.flowSucceeded(ctx, email, resp, EventRegisterSuccess, EventRegisterFailure, MetricRegisterSuccess, MetricRegisterFailure, msgRegistrationFailed)
	}

	result := s.classifyRegisterFailure(resp)
	s.metricInc(MetricRegisterFailure)
	s.emitRegisterFailure(ctx, email, result.Error)
	return result
}

func (s *Session) classifyRegisterFailure(resp *wire.Response) FlowResult {
	switch resp.StatusCode {
	case http.StatusConflict:
		return FlowResult{Error: serverMessage(resp, msgEmailTaken)}
	case http.StatusBadRequest:
		return validationResult(resp)
	default:
		return FlowResult{Error: serverMessage(resp, msgRegistrationFailed)}
	}
}

// Logout clears the local tokens unconditionally, then notifies the
// backend to revoke the access token if one existed. Revoke failures are
// swallowed: logout never reports failure to its caller.
func (s *Session) Logout(ctx context.Context) {
	pair := s.loadPair(ctx)
	s.clearTokens(ctx)

	s.metricInc(MetricLogout)
	s.emitEvent(ctx, SessionEvent{
		EventType: EventLogout,
		Success:   true,
	})
	s.log.Info().Msg("logged out")

	if pair.AccessToken == "" {
		return
	}
	if _, err := s.api.Post(ctx, s.cfg.Endpoints.LogoutPath, nil, map[string]string{
		"Authorization": "Bearer " + pair.AccessToken,
	}); err != nil {
		s.log.Debug().Err(err).Msg("logout revoke call failed")
	}
}

// flowSucceeded persists the pair from a successful login/register
// response. An unusable body, an incomplete pair, or a failing store
// degrades to a failure result rather than caching ambiguous
// credentials, and is counted and emitted as a failure like any other.
func (s *Session) flowSucceeded(ctx context.Context, email string, resp *wire.Response, eventType, failEventType string, metric, failMetric MetricID, fallback string) FlowResult {
	var pair tokenstore.Pair
	if err := resp.DecodeJSON(&pair); err != nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		s.log.Warn().Err(err).Msg("auth response missing token pair")
		return s.flowDegraded(ctx, email, failEventType, failMetric, fallback)
	}
	if err := s.store.Save(ctx, pair); err != nil {
		s.log.Error().Err(err).Msg("token pair persist failed")
		return s.flowDegraded(ctx, email, failEventType, failMetric, fallback)
	}

	s.metricInc(metric)
	user := s.identityFromToken(pair.AccessToken)
	event := SessionEvent{
		EventType: eventType,
		Email:     email,
		Success:   true,
	}
	if user != nil {
		event.UserID = user.ID
	}
	s.emitEvent(ctx, event)
	s.log.Info().Str("email", email).Msg("authenticated")

	return FlowResult{Success: true, User: user}
}

func (s *Session) flowDegraded(ctx context.Context, email, eventType string, metric MetricID, fallback string) FlowResult {
	s.metricInc(metric)
	s.emitEvent(ctx, SessionEvent{
		EventType: eventType,
		Email:     email,
		Error:     fallback,
	})
	return FlowResult{Error: fallback}
}

func (s *Session) emitLoginFailure(ctx context.Context, email, errMsg string) {
	s.emitEvent(ctx, SessionEvent{
		EventType: EventLoginFailure,
		Email:     email,
		Error:     errMsg,
	})
}

func (s *Session) emitRegisterFailure(ctx context.Context, email, errMsg string) {
	s.emitEvent(ctx, SessionEvent{
		EventType: EventRegisterFailure,
		Email:     email,
		Error:     errMsg,
	})
}

func validationResult(resp *wire.Response) FlowResult {
	var payload validationResponse
	_ = resp.DecodeJSON(&payload)
	ve := payload.ValidationErrors
	if len(ve) == 0 {
		ve = payload.Errors
	}
	return FlowResult{Error: msgValidationFailed, ValidationErrors: ve}
}

func serverMessage(resp *wire.Response, fallback string) string {
	if msg := resp.Message(); msg != "" {
		return msg
	}
	return fallback
}
