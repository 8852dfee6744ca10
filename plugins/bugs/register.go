package bugs

import (
	"github.com/myply/myply-go/host"
	adaptorplugins "github.com/myply/myply-go/host/adaptor/plugins"
	"github.com/myply/myply-go/host/config"
	logpkg "github.com/myply/myply-go/host/logger"
)

func init() {
	if err := adaptorplugins.Register(pluginName, buildContribution); err != nil {
		panic(err)
	}
}

func buildContribution(cfg *config.Config, logger *logpkg.Logger) (*adaptorplugins.Contribution, error) {
	settings, err := LoadSettings(cfg)
	if err != nil {
		return nil, err
	}

	var log host.Logger = host.NopLogger{}
	if logger != nil {
		log = logger.With("adaptor", pluginName)
	}

	client := NewClient(settings, log)
	return &adaptorplugins.Contribution{
		Adaptor: NewAdaptor(client, settings.StrictLinks, log),
	}, nil
}
