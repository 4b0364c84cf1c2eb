package langaccess

import (
	"context"

	"langengine/internal/api"
	"langengine/internal/engine"
	"langengine/internal/ipc"
)

// Access provides language operations regardless of IPC or in-process backing.
type Access interface {
	Get(ctx context.Context) (api.LanguageResponse, error)
	Set(ctx context.Context, code *string) (api.SetLanguageResponse, error)
	// Source names the backing: "daemon" or the local store description.
	Source() string
}

// NewIPCAccess returns an Access backed by daemon IPC.
func NewIPCAccess(client *ipc.Client) Access {
	return &ipcAccess{client: client}
}

// NewLocalAccess returns an Access backed by an in-process accessor.
// storeLabel is reported by Source.
func NewLocalAccess(acc engine.Accessor, storeLabel string) Access {
	return &localAccess{accessor: acc, label: storeLabel}
}

type ipcAccess struct {
	client *ipc.Client
}

func (a *ipcAccess) Get(_ context.Context) (api.LanguageResponse, error) {
	resp, err := a.client.Get()
	if err != nil {
		return api.LanguageResponse{}, err
	}
	return *resp, nil
}

func (a *ipcAccess) Set(_ context.Context, code *string) (api.SetLanguageResponse, error) {
	resp, err := a.client.Set(code)
	if err != nil {
		return api.SetLanguageResponse{}, err
	}
	return *resp, nil
}

func (a *ipcAccess) Source() string { return "daemon" }

type localAccess struct {
	accessor engine.Accessor
	label    string
}

func (a *localAccess) Get(_ context.Context) (api.LanguageResponse, error) {
	return api.FromLanguage(a.accessor.CurrentLanguage()), nil
}

func (a *localAccess) Set(ctx context.Context, code *string) (api.SetLanguageResponse, error) {
	eng, stateful := a.accessor.(*engine.Engine)
	if !stateful {
		var raw string
		if code != nil {
			raw = *code
		}
		status := a.accessor.SetCurrentLanguage(raw)
		resp := api.FromSetResult(a.accessor.CurrentLanguage(), engine.ChangeEvent{}, nil)
		resp.Status, resp.StatusText = int(status), status.String()
		return resp, nil
	}
	if code == nil {
		return api.NullInput(eng.CurrentLanguage()), nil
	}
	event, err := eng.Set(ctx, *code)
	return api.FromSetResult(eng.CurrentLanguage(), event, err), nil
}

func (a *localAccess) Source() string { return a.label }
