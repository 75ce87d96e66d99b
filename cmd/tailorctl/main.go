// tailorctl submits a resume job to a running server and polls it to
// completion, printing the local keyword score along the way.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"resume-tailor-service/internal/apiclient"
	"resume-tailor-service/internal/keywords"
	"resume-tailor-service/internal/poller"
)

func main() {
	var (
		server      = flag.String("server", "http://localhost:8080", "base URL of the job service")
		resumePath  = flag.String("resume", "", "path to the resume text file")
		jdPath      = flag.String("jd", "", "path to the job description text file")
		task        = flag.String("task", "tailor", "job type: suggest or tailor")
		interval    = flag.Duration("interval", 2*time.Second, "poll interval")
		maxAttempts = flag.Int("attempts", 30, "max poll attempts before giving up")
	)
	flag.Parse()

	if *resumePath == "" || *jdPath == "" {
		fmt.Fprintln(os.Stderr, "both -resume and -jd are required")
		flag.Usage()
		os.Exit(2)
	}

	resume, err := os.ReadFile(*resumePath)
	if err != nil {
		fatalf("read resume: %v", err)
	}
	jd, err := os.ReadFile(*jdPath)
	if err != nil {
		fatalf("read job description: %v", err)
	}

	match := keywords.Score(string(resume), string(jd))
	fmt.Printf("keyword match: %d%% (%s)\n", match.Percentage, strings.Join(match.MatchedTerms, ", "))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := poller.New(
		apiclient.New(*server),
		poller.Config{MaxAttempts: *maxAttempts, Interval: *interval},
		func(u poller.Update) {
			if u.State == poller.Polling {
				fmt.Printf("\rwaiting... %3d%%", u.Progress)
			}
		},
	)

	final := p.Run(ctx, apiclient.SubmitJobRequest{
		JobType:        *task,
		OriginalResume: string(resume),
		JobDescription: string(jd),
	})
	fmt.Println()

	switch final.State {
	case poller.Succeeded:
		fmt.Println(final.Result)
	case poller.TimedOut:
		fatalf("%s (job id %s)", final.Message, final.JobID)
	default:
		fatalf("job failed: %s", final.Message)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
