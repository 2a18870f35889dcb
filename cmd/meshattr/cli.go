package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arloliu/meshattr/attribute"
	"github.com/arloliu/meshattr/compress"
	"github.com/arloliu/meshattr/config"
	"github.com/arloliu/meshattr/format"
	"github.com/arloliu/meshattr/inspect"
	"github.com/arloliu/meshattr/logger"
	"github.com/arloliu/meshattr/snapshot"
)

var version = "0.1.0"

const envPrefix = "MESHATTR"

// cli holds the state shared by the subcommands.
type cli struct {
	v   *viper.Viper
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "meshattr",
		Short: "meshattr - attribute snapshot tool",
		Long: `meshattr reads and writes snapshots of per-element attribute sets.
Settings come from an optional YAML file (--config), MESHATTR_* environment
variables and command line flags, in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			c.cfg = cfg

			return logger.Init(cfg.Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().String("config", "", "Path to YAML configuration file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	_ = c.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = c.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newVersionCmd(), newTypesCmd(), newInspectCmd())

	convertCmd := newConvertCmd(c)
	_ = c.v.BindPFlag("snapshot.compression", convertCmd.Flags().Lookup("compression"))
	root.AddCommand(convertCmd)

	return root
}

// loadConfig layers the YAML file, the environment and the flags.
func (c *cli) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if path := c.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if c.v.IsSet("log.level") {
		cfg.Log.Level = c.v.GetString("log.level")
	}
	if c.v.IsSet("log.encoding") {
		cfg.Log.Encoding = c.v.GetString("log.encoding")
	}
	if c.v.IsSet("snapshot.compression") {
		compression, err := format.ParseCompressionType(c.v.GetString("snapshot.compression"))
		if err != nil {
			return config.Config{}, err
		}
		cfg.Snapshot.Compression = compression
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "meshattr v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered element types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reg := attribute.DefaultRegistry()
			for _, name := range reg.TypeNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, reg.ElementTypeIDNameByElementTypeName(name))
			}
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print a JSON report of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the operator
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			header, err := snapshot.DecodeHeader(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			m, err := snapshot.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			report := inspect.Build(m)
			report.Snapshot = inspect.NewSnapshotInfo(path, header)

			return report.WriteJSON(cmd.OutOrStdout())
		},
	}
}

func newConvertCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a snapshot with another compression",
		Long: `Re-encode a snapshot with another body compression.

Example:
  meshattr convert mesh.snap mesh.zst.snap --compression zstd`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			compression := c.cfg.Snapshot.Compression

			m, err := snapshot.Load(in)
			if err != nil {
				return err
			}
			if err := snapshot.Save(out, m, snapshot.WithCompression(compression)); err != nil {
				return err
			}

			data, err := os.ReadFile(out) //nolint:gosec // path is chosen by the operator
			if err != nil {
				return fmt.Errorf("failed to read converted snapshot: %w", err)
			}
			header, err := snapshot.DecodeHeader(data)
			if err != nil {
				return err
			}

			stats := compress.CompressionStats{
				Algorithm:      header.Compression,
				OriginalSize:   int64(header.RawLength),
				CompressedSize: int64(header.BodyLength),
			}
			logger.Info("converted snapshot",
				zap.String("in", in),
				zap.String("out", out),
				zap.Stringer("compression", compression),
				zap.Int("attributes", m.NbAttributes()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d attributes, %d items, %s body %d -> %d bytes (%.1f%% saved)\n",
				out, m.NbAttributes(), m.NbItems(), stats.Algorithm,
				stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings())

			return nil
		},
	}
	cmd.Flags().String("compression", "none", "Body compression (none, zstd, s2, lz4)")

	return cmd
}
