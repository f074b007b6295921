package plugin

import "fmt"

// SuitePlugin contributes a scenario suite to the bank.
type SuitePlugin struct {
	PluginName    string
	PluginVersion string
	Source        string
	Data          []byte
}

func (s *SuitePlugin) Name() string    { return s.PluginName }
func (s *SuitePlugin) Version() string { return s.PluginVersion }

// Init loads the suite into the context bank.
func (s *SuitePlugin) Init(ctx *Context) error {
	if ctx == nil || ctx.Bank == nil {
		return fmt.Errorf("suite plugin %s needs a bank", s.PluginName)
	}
	source := s.Source
	if source == "" {
		source = "plugin:" + s.PluginName
	}
	return ctx.Bank.LoadBytes(s.Data, source)
}
