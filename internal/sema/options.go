package sema

import "log/slog"

// options holds the analyzer's runtime configuration assembled from an
// [Option] list.
type options struct {
	log         *slog.Logger
	traceSymtab bool
}

func defaultOptions() *options {
	return &options{log: slog.Default()}
}

// Option configures a value returned by [New].
type Option interface {
	apply(o *options)
	logAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies [Option].
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	for _, opt := range o {
		as = append(as, opt.logAttr())
	}
	return slog.GroupValue(as...)
}

func (o Options) apply(opts *options) {
	for _, opt := range o {
		opt.apply(opts)
	}
}

func (o Options) logAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithLogger sets the logger the analyzer uses for trace output.
func WithLogger(log *slog.Logger) Option { return loggerOption{log: log} }

type loggerOption struct{ log *slog.Logger }

func (o loggerOption) apply(opts *options) { opts.log = o.log }
func (o loggerOption) logAttr() slog.Attr  { return slog.Bool("logger", o.log != nil) }

// WithSymtabTrace enables a symbol-table dump at debug level every time a
// scope is left, the analyzer half of the -D flag.
func WithSymtabTrace(enabled bool) Option { return symtabTraceOption{enabled: enabled} }

type symtabTraceOption struct{ enabled bool }

func (o symtabTraceOption) apply(opts *options) { opts.traceSymtab = o.enabled }
func (o symtabTraceOption) logAttr() slog.Attr  { return slog.Bool("traceSymtab", o.enabled) }
