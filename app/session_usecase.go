package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/selection"
	"github.com/ludo-technologies/xingstat/service"
)

// Session texts
const (
	SessionTitle      = "Border Crossing Vehicles 2"
	CategoryMenuTitle = "List of available option inputs"
	SelectionPrompt   = "Please enter your selection: "
	InvalidSelection  = "invalid selection input, please try again"
	PausePrompt       = "Press Enter to continue"
	ExitMessage       = "EXITING PROGRAM"
)

// SessionOptions holds the report settings used by the interactive session
type SessionOptions struct {
	WindowSize       int
	ThresholdPercent float64
	ListingCategory  string
	ChartRoles       domain.ChartRoles

	// ChartDirectory receives the HTML page written for the chart command
	ChartDirectory string
	NoOpen         bool

	// Pause waits for Enter after every report
	Pause bool
}

// DefaultSessionOptions returns options matching the report defaults
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		WindowSize:       domain.DefaultWindowSize,
		ThresholdPercent: domain.DefaultThresholdPercent,
		ListingCategory:  domain.DefaultListingCategory,
		ChartRoles:       domain.DefaultChartRoles(),
		Pause:            true,
	}
}

// SessionUseCase runs the menu loop over a loaded table
type SessionUseCase struct {
	table     *domain.Table
	console   domain.Console
	service   domain.ReportService
	formatter domain.ReportFormatter
	output    domain.ReportWriter
	utils     *service.FormatUtils
	opts      SessionOptions
	now       func() time.Time
	logger    *slog.Logger
}

// errQuit ends the loop on end of input
var errQuit = errors.New("input exhausted")

// Run shows the menu until the user quits. End of input is treated as quit.
func (uc *SessionUseCase) Run(ctx context.Context) error {
	out := uc.console.Writer()
	machine := selection.NewMachine(uc.table)

	for !machine.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		uc.showMenu(out)
		step, err := uc.prompt(machine)
		if err == nil && machine.State() == domain.StateAwaitingCategoryChoice {
			uc.showCategories(out)
			step, err = uc.prompt(machine)
		}
		if errors.Is(err, errQuit) {
			fmt.Fprintln(out)
			fmt.Fprintln(out, ExitMessage)
			return nil
		}
		if err != nil {
			return err
		}

		if step.Command == domain.MenuQuit {
			fmt.Fprintln(out, ExitMessage)
			return machine.Complete()
		}

		if !step.Cancelled() {
			uc.dispatch(ctx, out, step)
		}
		if err := machine.Complete(); err != nil {
			return err
		}

		if uc.opts.Pause && !step.Cancelled() {
			fmt.Fprintln(out)
			if _, err := uc.console.ReadLine(PausePrompt); err != nil {
				if errors.Is(err, io.EOF) {
					fmt.Fprintln(out)
					fmt.Fprintln(out, ExitMessage)
					return nil
				}
				return err
			}
		}
	}
	return nil
}

// prompt reads lines until the machine accepts one
func (uc *SessionUseCase) prompt(machine *selection.Machine) (selection.Step, error) {
	for {
		line, err := uc.console.ReadLine(SelectionPrompt)
		if errors.Is(err, io.EOF) {
			return selection.Step{}, errQuit
		}
		if err != nil {
			return selection.Step{}, err
		}

		step, err := machine.Feed(line)
		if err != nil {
			return step, err
		}
		if !step.Invalid {
			return step, nil
		}
		uc.logger.Debug("invalid selection", "input", line, "state", machine.State().String())
		fmt.Fprintln(uc.console.Writer(), InvalidSelection)
	}
}

func (uc *SessionUseCase) showMenu(out io.Writer) {
	t := uc.table
	listing := service.ResolveListingIndex(t, uc.opts.ListingCategory)

	window := uc.opts.WindowSize
	if window > t.Years() {
		window = t.Years()
	}
	if window < 1 {
		window = 1
	}
	roles := uc.opts.ChartRoles

	fmt.Fprintln(out, uc.utils.TitledRule(SessionTitle))
	fmt.Fprintln(out, "Options:")
	fmt.Fprintf(out, "%s: Display the number of %s crossing the border for each year, for the %d-year period\n",
		uc.utils.Key("A"), t.Name(listing), t.Years())
	fmt.Fprintf(out, "%s: Display user-selected input's mean number of vehicles from %d to %d and the maximum traffic in the %d years\n",
		uc.utils.Key("B"), t.FirstYear(), t.FirstYear()+window-1, window)
	fmt.Fprintf(out, "%s: Display user-selected input's year on year growth and list down years that have an increase of >%s%%\n",
		uc.utils.Key("C"), formatThreshold(uc.opts.ThresholdPercent))
	fmt.Fprintf(out, "%s: Show a graph of %s per %s vs year and number of %s vs year\n",
		uc.utils.Key("D"), uc.utils.Lower(t.Name(roles.Numerator)), service.SingularName(t.Name(roles.Denominator)),
		uc.utils.Lower(t.Name(roles.Secondary)))
	fmt.Fprintln(out, "Select an option above to view the data, or type 'Q' or 'Quit' to exit the program")
}

func (uc *SessionUseCase) showCategories(out io.Writer) {
	fmt.Fprintln(out, uc.utils.TitledRule(CategoryMenuTitle))
	fmt.Fprintln(out, "Options:")
	for i := 0; i < uc.table.Len(); i++ {
		fmt.Fprintf(out, "%s: %s\n", uc.utils.Key(uc.table.Code(i)), uc.table.Name(i))
	}
	fmt.Fprintln(out, "Select an option above to view the data, or press Enter to go back")
}

// dispatch runs one report. Failures are printed as one line and the loop goes on.
func (uc *SessionUseCase) dispatch(ctx context.Context, out io.Writer, step selection.Step) {
	kind, ok := step.Command.ReportKind()
	if !ok {
		return
	}

	req := domain.DefaultReportRequest(kind)
	req.WindowSize = uc.opts.WindowSize
	req.ThresholdPercent = uc.opts.ThresholdPercent
	req.ListingCategory = uc.opts.ListingCategory
	req.ChartRoles = uc.opts.ChartRoles
	if step.Choice.Kind == domain.ChoiceCategory {
		req.CategoryIndex = step.Choice.Index
	}

	if err := uc.render(ctx, out, req); err != nil {
		uc.logger.Warn("report failed", "kind", string(kind), "error", err)
		fmt.Fprintln(out, uc.utils.Error(fmt.Sprintf("Error: %v", err)))
	}
}

func (uc *SessionUseCase) render(ctx context.Context, out io.Writer, req domain.ReportRequest) error {
	response, err := uc.service.Generate(ctx, uc.table, req)
	if err != nil {
		return err
	}

	if req.Kind != domain.ReportKindChart {
		return uc.formatter.Write(response, domain.OutputFormatText, out)
	}

	// The chart prints its summary and is also written as an HTML page
	if err := uc.formatter.Write(response, domain.OutputFormatText, out); err != nil {
		return err
	}
	path, err := OutputFilePath(uc.opts.ChartDirectory, "chart", domain.OutputFormatHTML, uc.now())
	if err != nil {
		return err
	}
	return uc.output.Write(out, path, domain.OutputFormatHTML, uc.opts.NoOpen, func(w io.Writer) error {
		return uc.formatter.Write(response, domain.OutputFormatHTML, w)
	})
}

func formatThreshold(v float64) string {
	return fmt.Sprintf("%g", v)
}

// SessionUseCaseBuilder provides a builder pattern for creating SessionUseCase
type SessionUseCaseBuilder struct {
	table     *domain.Table
	console   domain.Console
	service   domain.ReportService
	formatter domain.ReportFormatter
	output    domain.ReportWriter
	utils     *service.FormatUtils
	opts      SessionOptions
	now       func() time.Time
	logger    *slog.Logger
}

// NewSessionUseCaseBuilder creates a new builder with default options
func NewSessionUseCaseBuilder() *SessionUseCaseBuilder {
	return &SessionUseCaseBuilder{opts: DefaultSessionOptions()}
}

// WithTable sets the loaded table
func (b *SessionUseCaseBuilder) WithTable(table *domain.Table) *SessionUseCaseBuilder {
	b.table = table
	return b
}

// WithConsole sets the console
func (b *SessionUseCaseBuilder) WithConsole(console domain.Console) *SessionUseCaseBuilder {
	b.console = console
	return b
}

// WithService sets the report service
func (b *SessionUseCaseBuilder) WithService(service domain.ReportService) *SessionUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the report formatter
func (b *SessionUseCaseBuilder) WithFormatter(formatter domain.ReportFormatter) *SessionUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the writer used for the chart page
func (b *SessionUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *SessionUseCaseBuilder {
	b.output = output
	return b
}

// WithFormatUtils sets the text styling
func (b *SessionUseCaseBuilder) WithFormatUtils(utils *service.FormatUtils) *SessionUseCaseBuilder {
	b.utils = utils
	return b
}

// WithOptions sets the report options
func (b *SessionUseCaseBuilder) WithOptions(opts SessionOptions) *SessionUseCaseBuilder {
	b.opts = opts
	return b
}

// WithClock sets the time source used to name chart pages
func (b *SessionUseCaseBuilder) WithClock(now func() time.Time) *SessionUseCaseBuilder {
	b.now = now
	return b
}

// WithLogger sets the logger
func (b *SessionUseCaseBuilder) WithLogger(logger *slog.Logger) *SessionUseCaseBuilder {
	b.logger = logger
	return b
}

// Build creates the SessionUseCase
func (b *SessionUseCaseBuilder) Build() (*SessionUseCase, error) {
	if b.table == nil || b.table.Len() == 0 {
		return nil, fmt.Errorf("a loaded table is required")
	}
	if b.console == nil {
		return nil, fmt.Errorf("console is required")
	}
	if b.service == nil {
		return nil, fmt.Errorf("report service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("report formatter is required")
	}
	if b.output == nil {
		b.output = service.NewFileOutputWriter(nil)
	}
	if b.utils == nil {
		b.utils = service.NewFormatUtils(false)
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.opts.ChartDirectory == "" {
		b.opts.ChartDirectory = ".xingstat/reports"
	}

	return &SessionUseCase{
		table:     b.table,
		console:   b.console,
		service:   b.service,
		formatter: b.formatter,
		output:    b.output,
		utils:     b.utils,
		opts:      b.opts,
		now:       b.now,
		logger:    b.logger,
	}, nil
}
