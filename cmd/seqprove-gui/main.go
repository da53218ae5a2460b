// Command seqprove-gui is a desktop front end reproducing the teacher's
// main.go shape (embedded assets, a bound JS callback, webview dispatch)
// but driving the sequent prover instead of the clause-resolution engine.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
	webview "github.com/webview/webview_go"

	"seqprove/internal/logging"
	"seqprove/llm"
	"seqprove/parser"
	"seqprove/printer"
	"seqprove/prover"
	"seqprove/sequent"
)

//go:embed assets/*
var assets embed.FS

func main() {
	if runtime.GOOS == "linux" {
		os.Setenv("WEBKIT_DISABLE_COMPOSITING_MODE", "1")
		os.Setenv("WEBKIT_DISABLE_DMABUF_RENDERER", "1")
		os.Setenv("GDK_BACKEND", "x11")
	}

	log := logging.New("seqprove-gui", os.Getenv("SEQPROVE_LOG_LEVEL"))

	ln, err := net.Listen("tcp", "127.0.0.1:51116")
	if err != nil {
		log.Error("failed to bind asset server", "error", err)
		os.Exit(1)
	}
	defer ln.Close()

	go http.Serve(ln, http.FileServer(http.FS(assets)))

	w := webview.New(true)
	defer w.Destroy()
	w.SetTitle("Sequent Prover")
	w.SetSize(520, 720, webview.HintNone)

	llmClient := llm.NewClient()

	w.Bind("solveAsync", func(text string, showTrace bool, callbackID string) {
		go solve(w, llmClient, log, text, showTrace, callbackID)
	})

	w.Navigate("http://" + ln.Addr().String() + "/assets/index.html")
	w.Run()
}

func solve(w webview.WebView, llmClient *llm.Client, log hclog.Logger, text string, showTrace bool, callbackID string) {
	sendResult := func(result string) {
		w.Dispatch(func() {
			escaped, _ := json.Marshal(result)
			w.Eval(fmt.Sprintf("window._resolveCallback('%s', %s)", callbackID, escaped))
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The input may already be parser JSON; if not, ask the LLM to
	// translate it, the same two-step shape as the teacher's
	// ParsingPrompt -> resolution.Prove -> ExplanationPrompt pipeline.
	formula, err := parser.ParseFormula([]byte(text))
	if err != nil {
		translated, llmErr := llmClient.ParseNaturalLanguage(ctx, text)
		if llmErr != nil {
			sendResult("error: " + llmErr.Error())
			return
		}
		formula, err = parser.ParseFormula([]byte(translated))
		if err != nil {
			sendResult("error: could not parse formula: " + err.Error())
			return
		}
	}

	goal := sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(formula))
	log.Debug("solving", "sequent", printer.Sequent(goal))

	provable, err := prover.ProveSequent(ctx, goal, log)
	verdict := "not provable within the time budget"
	if err == nil && provable {
		verdict = "provable"
	}

	trace := printer.Trace{Verdict: verdict}
	rendered := printer.RenderText(trace)

	explanation, expErr := llmClient.Explain(ctx, rendered)
	if expErr != nil {
		explanation = "(no explanation available: " + expErr.Error() + ")"
	}

	if showTrace {
		sendResult(rendered + "\n" + explanation)
	} else {
		sendResult(explanation)
	}
}
