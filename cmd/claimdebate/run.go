package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cpunion/claim-debate/pkg/debate"
	"github.com/cpunion/claim-debate/pkg/llm"
	"github.com/cpunion/claim-debate/pkg/report"
	"github.com/cpunion/claim-debate/pkg/roles"
	"github.com/cpunion/claim-debate/pkg/types"
	"github.com/cpunion/claim-debate/pkg/verdict"
)

const (
	demoFact = "During the 2020 coronavirus pandemic in the US , a study proving the effectivity hydroxychloroquine to treat this virus was done in a non-randomized group and published on YouTube instead of a peer-reviewed journal ."

	demoClaim = "This is in violation of federal law , since none have been determined to be safe and effective by the FDA.In early March President Trump directed the FDA to accelerate the testing and possible use of certain medications to discover if they would help treat patients who already have COVID-19. '' U.S . Moves to Expand Array of Drug Therapies Deployed Against Coronavirus '' , The Wall Street Journal , March 19 , 2020 Among potential drugs are chloroquine and hydroxychloroquine , which have been successfully used to treat malaria ; however , they have never undergone properly designed clinical trials for the treatment of the coronavirus , and the one study reporting positive results was in a small , non-randomized group of patients and was published on YouTube rather than a peer-reviewed journal ."
)

var errMissingInput = errors.New("both a fact and a claim are required (use --fact/--claim, --fact-file/--claim-file or --demo)")

var runOpts struct {
	fact      string
	claim     string
	factFile  string
	claimFile string
	demo      bool
	json      bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one debate and print the verdict",
	RunE:  runDebate,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runOpts.fact, "fact", "", "ground-truth statement")
	f.StringVar(&runOpts.claim, "claim", "", "statement to evaluate against the fact")
	f.StringVar(&runOpts.factFile, "fact-file", "", "read the fact from a file (- for stdin)")
	f.StringVar(&runOpts.claimFile, "claim-file", "", "read the claim from a file (- for stdin)")
	f.BoolVar(&runOpts.demo, "demo", false, "use the built-in hydroxychloroquine example")
	f.BoolVar(&runOpts.json, "json", false, "print the result as JSON; progress goes to stderr")
	f.String("event-log", "", "append one JSON line per statement to this file")
}

func runDebate(cmd *cobra.Command, _ []string) error {
	fact, claim, err := debateInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m, err := llm.NewModel(ctx, cfg.LLMConfig())
	if err != nil {
		return err
	}
	client := llm.NewClient(m, cfg.Pricing)

	registry, err := roles.LoadFile(cfg.RolesFile)
	if err != nil {
		return err
	}

	var logger debate.EventLogger
	if cfg.EventLog != "" {
		jl, err := debate.NewJSONLLogger(cfg.EventLog)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer jl.Close()
		logger = jl
	}

	progress := cmd.OutOrStdout()
	if runOpts.json {
		progress = cmd.ErrOrStderr()
	}
	printer := report.NewPrinter(progress)

	orch, err := debate.NewOrchestrator(client, registry, debate.Options{
		Logger: logger,
		Model:  client.Model(),
		OnRound: func(_ int, r debate.Round) {
			printer.Round(r.Title)
		},
		OnStatement: func(_ int, _ debate.Round, st types.Statement) {
			printer.Statement(st)
		},
	})
	if err != nil {
		return err
	}

	printer.Header(fact, claim)
	res, err := orch.Debate(ctx, fact, claim)
	if err != nil {
		printer.Error(err)
		return err
	}

	v := verdict.Parse(res.Verdict)
	if runOpts.json {
		return report.WriteJSON(cmd.OutOrStdout(), res, v)
	}
	printer.Verdict(res, v)
	return nil
}

// debateInput resolves the fact and claim from flags, files or the demo pair.
func debateInput(stdin io.Reader) (string, string, error) {
	fact, claim := runOpts.fact, runOpts.claim
	if runOpts.demo {
		if fact == "" {
			fact = demoFact
		}
		if claim == "" {
			claim = demoClaim
		}
	}

	var err error
	if runOpts.factFile != "" {
		if fact, err = readInput(runOpts.factFile, stdin); err != nil {
			return "", "", err
		}
	}
	if runOpts.claimFile != "" {
		if claim, err = readInput(runOpts.claimFile, stdin); err != nil {
			return "", "", err
		}
	}

	fact, claim = strings.TrimSpace(fact), strings.TrimSpace(claim)
	if fact == "" || claim == "" {
		return "", "", errMissingInput
	}
	return fact, claim, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
