package cli

import (
	"fmt"
	"time"

	"github.com/arthur-debert/dispatchr/internal/version"
	"github.com/arthur-debert/dispatchr/pkg/dispatchctx"
	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/logging"
	"github.com/arthur-debert/dispatchr/pkg/manifest"
	"github.com/arthur-debert/dispatchr/pkg/render"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"gopkg.in/yaml.v3"
)

func newRoutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: MsgRoutesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			actions := d.Actions()
			routes := make([]render.Route, 0, len(actions))
			for _, action := range actions {
				bindings, _ := d.Handlers(action)
				routes = append(routes, render.NewRoute(action, bindings, nil))
			}
			return r.Routes(routes)
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <action>",
		Short: MsgResolveShort,
		Example: `  # Which stores see ADD_ITEM, and through which handler
  dispatchr resolve ADD_ITEM`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			action := args[0]
			bindings := d.CreateContext(nil).Resolve(action)

			specific, _ := d.Handlers(action)
			direct := make(map[string]bool, len(specific))
			for _, b := range specific {
				direct[b.Name] = true
			}
			fallback := make(map[string]bool)
			for _, b := range bindings {
				if !direct[b.Name] {
					fallback[b.Name] = true
				}
			}

			return r.Routes([]render.Route{render.NewRoute(action, bindings, fallback)})
		},
	}
}

func newDispatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <action> [payload]",
		Short: MsgDispatchShort,
		Long:  MsgDispatchLong,
		Example: `  dispatchr dispatch ADD_ITEM '{sku: A-1, qty: 2}'
  dispatchr dispatch CHECKOUT --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.dispatch")
			done := logging.LogOperationStart(logger, "dispatch")
			defer done()

			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			var payload any
			if len(args) == 2 {
				if err := yaml.Unmarshal([]byte(args[1]), &payload); err != nil {
					return errors.Wrap(err, errors.ErrInvalidInput, "payload is not valid YAML").
						WithDetail("payload", args[1])
				}
			}

			ctx := d.CreateContext(nil)
			result, dispatchErr := ctx.Dispatch(args[0], payload)
			report := newReport(ctx, args[0], result, dispatchErr)
			if err := r.Report(report); err != nil {
				return err
			}
			return dispatchErr
		},
	}
}

// newReport builds a report from a dispatch result, taking each call's
// payload from what the recorder store saw
func newReport(ctx *dispatchctx.Context, action string, result *dispatchctx.Result, err error) render.Report {
	rep := render.Report{Action: action}
	if err != nil {
		rep.Error = err.Error()
	}
	if result == nil {
		return rep
	}

	rep.Duration = result.Duration().Round(time.Microsecond).String()
	for _, c := range result.Calls {
		call := render.Call{Store: c.Store, Handler: c.Handler}
		if c.Err != nil {
			call.Error = c.Err.Error()
		}
		// a store handles an action at most once, so its last event is this one
		if inst, err := ctx.Store(c.Store); err == nil {
			if rec, ok := inst.(*manifest.Recorder); ok && c.Err == nil {
				if events := rec.Events(); len(events) > 0 {
					call.Payload = events[len(events)-1].Payload
				}
			}
		}
		rep.Calls = append(rep.Calls, call)
	}
	return rep
}

func newStoresCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: MsgStoresShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.List("stores", d.Stores())
		},
	}
}

func newDomainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: MsgDomainsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.List("domains", d.Domains())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man <dir>",
		Short: MsgManShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "DISPATCHR",
				Section: "1",
				Source:  "dispatchr " + version.Version,
				Manual:  "dispatchr manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, args[0]); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to generate man pages in %s", args[0])
			}
			logger := logging.GetLogger("cli.man")
			logger.Info().Str("dir", args[0]).Msgf(MsgManWritten, args[0])
			return nil
		},
	}
}
