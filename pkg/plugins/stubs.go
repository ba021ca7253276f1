package plugins

import "github.com/envmgr/envmgr/pkg/logging"

// The built-in integrations (gh, tailscale, 1Password SSH agent) are
// currently stubs: they log the lifecycle event and do nothing else.
// TODO: drive `gh auth switch` from the gh block once the gh CLI exposes
// a non-interactive way to select accounts per directory.

type ghPlugin struct{}

func (p *ghPlugin) Name() string { return "gh" }

func (p *ghPlugin) OnAdd(cfg Config) error {
	logger := logging.GetLogger("plugins.gh")
	logger.Debug().Str("environment", cfg.Env).Msg("gh: environment added")
	return nil
}

func (p *ghPlugin) OnUse(cfg Config) error {
	logger := logging.GetLogger("plugins.gh")
	logger.Debug().Str("environment", cfg.Env).Msg("gh: environment activated")
	return nil
}

func (p *ghPlugin) OnRemove(cfg Config) error {
	logger := logging.GetLogger("plugins.gh")
	logger.Debug().Str("environment", cfg.Env).Msg("gh: environment removed")
	return nil
}

type tailscalePlugin struct{}

func (p *tailscalePlugin) Name() string { return "tailscale" }

func (p *tailscalePlugin) OnAdd(cfg Config) error {
	logger := logging.GetLogger("plugins.tailscale")
	logger.Debug().Str("environment", cfg.Env).Msg("tailscale: environment added")
	return nil
}

func (p *tailscalePlugin) OnUse(cfg Config) error {
	logger := logging.GetLogger("plugins.tailscale")
	logger.Debug().Str("environment", cfg.Env).Msg("tailscale: environment activated")
	return nil
}

func (p *tailscalePlugin) OnRemove(cfg Config) error {
	logger := logging.GetLogger("plugins.tailscale")
	logger.Debug().Str("environment", cfg.Env).Msg("tailscale: environment removed")
	return nil
}

type onePasswordPlugin struct{}

func (p *onePasswordPlugin) Name() string { return "op-ssh-agent" }

func (p *onePasswordPlugin) OnAdd(cfg Config) error {
	logger := logging.GetLogger("plugins.op")
	logger.Debug().Str("environment", cfg.Env).Msg("op-ssh-agent: environment added")
	return nil
}

func (p *onePasswordPlugin) OnUse(cfg Config) error {
	logger := logging.GetLogger("plugins.op")
	logger.Debug().Str("environment", cfg.Env).Msg("op-ssh-agent: environment activated")
	return nil
}

func (p *onePasswordPlugin) OnRemove(cfg Config) error {
	logger := logging.GetLogger("plugins.op")
	logger.Debug().Str("environment", cfg.Env).Msg("op-ssh-agent: environment removed")
	return nil
}
