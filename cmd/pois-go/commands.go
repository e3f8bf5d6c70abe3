package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/idlespace/pois-go/pkg/pois"
)

// closeLibrary releases lib and reports a failed close on w. The command's
// own result is left untouched.
func closeLibrary(w io.Writer, lib *pois.Library) {
	if cerr := lib.Close(); cerr != nil {
		fmt.Fprintf(w, "close library: %v\n", cerr)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bindings version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), pois.WrapperVersion())
		},
	}
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate RSA accumulator parameters and a prover key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			n, g, err := pois.GenerateRSAKey(cfg.KeyBits)
			if err != nil {
				return err
			}
			priv, err := pois.NewProverKey()
			if err != nil {
				return err
			}
			id, err := pois.ProverIDFromPublicKey(priv.PubKey())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "key-n: %s\n", n)
			fmt.Fprintf(out, "key-g: %s\n", g)
			fmt.Fprintf(out, "prover-key: %s\n", hex.EncodeToString(priv.PubKey().SerializeCompressed()))
			fmt.Fprintf(out, "prover-id: %s\n", id)
			return nil
		},
	}
}

func newPerformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perform",
		Short: "Run the engine's end-to-end PoIS flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := cfg.commonParam()
			if err != nil {
				return err
			}
			cfg.logParams(cmd.Context(), p)
			lib, err := cfg.open()
			if err != nil {
				return err
			}
			defer closeLibrary(cmd.ErrOrStderr(), lib)

			start := time.Now()
			if err := lib.PerformPois(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PerformPois finished in %v\n", time.Since(start))
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise the engine's artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := cfg.commonParam()
			if err != nil {
				return err
			}
			cfg.logParams(cmd.Context(), p)
			lib, err := cfg.open()
			if err != nil {
				return err
			}
			defer closeLibrary(cmd.ErrOrStderr(), lib)

			n, err := lib.InitializePoisArtifacts(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated files: %d\n", n)
			return nil
		},
	}
}

func newCommitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commits",
		Short: "List the commits of the generated files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := cfg.commonParam()
			if err != nil {
				return err
			}
			cfg.logParams(cmd.Context(), p)
			lib, err := cfg.open()
			if err != nil {
				return err
			}
			defer closeLibrary(cmd.ErrOrStderr(), lib)

			count := cfg.GeneratedCount
			if count < 0 {
				if count, err = lib.InitializePoisArtifacts(cmd.Context(), p); err != nil {
					return err
				}
			}
			commits, err := lib.GetCommits(cmd.Context(), count, p)
			if err != nil {
				return err
			}
			renderCommits(cmd.OutOrStdout(), commits)
			return nil
		},
	}
}

func newFlowCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Run commits, challenge, proof and verification against the engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := cfg.commonParam()
			if err != nil {
				return err
			}
			cfg.logParams(cmd.Context(), p)
			prover, err := cfg.proverID()
			if err != nil {
				return err
			}
			lib, err := cfg.open()
			if err != nil {
				return err
			}
			defer closeLibrary(cmd.ErrOrStderr(), lib)

			ctx := cmd.Context()
			var steps [][]string
			step := func(name string, start time.Time, detail string) {
				steps = append(steps, []string{name, time.Since(start).Round(time.Microsecond).String(), detail})
			}

			start := time.Now()
			count := cfg.GeneratedCount
			if count < 0 {
				if count, err = lib.InitializePoisArtifacts(ctx, p); err != nil {
					return err
				}
			}
			step("InitializePoisArtifacts", start, strconv.FormatInt(count, 10)+" files")

			start = time.Now()
			commits, err := lib.GetCommits(ctx, count, p)
			if err != nil {
				return err
			}
			step("GetCommits", start, bytefmt.ByteSize(totalRootBytes(commits))+" of roots")

			start = time.Now()
			challenge, err := lib.GenerateCommitChallenge(ctx, commits, p, prover)
			if err != nil {
				return err
			}
			step("GenerateCommitChallenge", start, strconv.Itoa(len(challenge))+" rows")

			start = time.Now()
			proofs, acc, err := lib.GetCommitProofAndAccProof(ctx, count, challenge, p)
			if err != nil {
				return err
			}
			step("GetCommitProofAndAccProof", start, strconv.Itoa(countProofs(proofs))+" commit proofs")

			start = time.Now()
			verr := lib.VerifyCommitAndAccProofs(ctx, challenge, p, prover)
			result := "accepted"
			if verr != nil {
				result = verr.Error()
			}
			step("VerifyCommitAndAccProofs", start, result)

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"step", "duration", "result"})
			table.SetBorder(false)
			table.AppendBulk(steps)
			table.Render()

			if dump {
				spew.Fdump(out, challenge, proofs, acc)
			}
			return verr
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the challenge and proofs")
	return cmd
}

func renderCommits(w io.Writer, commits []pois.Commit) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"file", "roots", "size", "first root"})
	table.SetBorder(false)
	for _, c := range commits {
		first := ""
		if len(c.Roots) > 0 {
			first = hex.EncodeToString(c.Roots[0][:min(8, len(c.Roots[0]))])
		}
		table.Append([]string{
			strconv.FormatInt(c.FileIndex, 10),
			strconv.Itoa(len(c.Roots)),
			bytefmt.ByteSize(c.RootBytes()),
			first,
		})
	}
	table.SetFooter([]string{"", "", "total", bytefmt.ByteSize(totalRootBytes(commits))})
	table.Render()
}

func totalRootBytes(commits []pois.Commit) uint64 {
	var n uint64
	for _, c := range commits {
		n += c.RootBytes()
	}
	return n
}

func countProofs(proofs [][]pois.CommitProof) int {
	n := 0
	for _, row := range proofs {
		n += len(row)
	}
	return n
}
