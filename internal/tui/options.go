package tui

import "github.com/evanschultz/tack/internal/modal"

// Option configures a Model.
type Option func(*Model)

// WithDescriptionPreview toggles the markdown preview of the selected row.
func WithDescriptionPreview(enabled bool) Option {
	return func(m *Model) {
		m.showPreview = enabled
	}
}

// WithControllerOptions forwards options to the modal controller built by NewModel.
func WithControllerOptions(opts ...modal.Option) Option {
	return func(m *Model) {
		m.controllerOpts = append(m.controllerOpts, opts...)
	}
}
