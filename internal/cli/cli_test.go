package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/territoriali/internal/adapters/scores"
	"github.com/okian/territoriali/internal/cli"
	"github.com/okian/territoriali/internal/report"
)

var bodies = map[string]string{
	"alice":   `[{"title":"T1","name":"Task A","score":10,"max_score":10},{"title":"T2","name":"Task B","score":0,"max_score":5}]`,
	"bob":     `[{"title":"T1","name":"Task A","score":3,"max_score":10},{"title":"T2","name":"Task B","score":5,"max_score":5}]`,
	"carol":   `[{"title":"T1","name":"Task A","score":1,"max_score":10}]`,
	"trailer": `[{"title":"T1","name":"A","score":1,"max_score":1}] trailing garbage`,
}

func newAPI(hits *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		username := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/user/"), "/scores")
		body, ok := bodies[username]
		if !ok {
			body = "[]"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func run(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	err = cli.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	Convey("Given a mocked scores API", t, func() {
		t.Setenv("TERRITORIALI_CONFIG", "")
		var hits int32
		srv := newAPI(&hits)
		defer srv.Close()
		endpoint := "--endpoint=" + srv.URL + "/api/user/{username}/scores"

		Convey("When no usernames are given", func() {
			stdout, _, err := run(endpoint, "--color=never")

			Convey("Then it should be a usage error without network traffic", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "No arguments given!")
				So(cli.ExitCode(err), ShouldEqual, cli.ExitUsage)
				So(atomic.LoadInt32(&hits), ShouldEqual, 0)
				So(stdout, ShouldBeEmpty)
			})
		})

		Convey("When listing a single user", func() {
			stdout, _, err := run(endpoint, "--color=never", "--mode=list", "alice")

			Convey("Then the per-user report should be printed", func() {
				So(err, ShouldBeNil)
				So(cli.ExitCode(err), ShouldEqual, cli.ExitOK)
				So(stdout, ShouldEqual,
					"alice: 10/15\n"+
						"              Task A: 10/10\n"+
						"              Task B: 0/5\n")
			})
		})

		Convey("When tabulating two users", func() {
			stdout, _, err := run(endpoint, "--color=never", "alice", "bob")

			Convey("Then the table should be printed by default", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
				So(lines, ShouldHaveLength, 6)
				So(lines[0], ShouldEqual, fmt.Sprintf(" %15s | %15s | %15s |", "", "alice", "bob"))
				So(lines[2], ShouldEqual, fmt.Sprintf(" %15s | %15s | %15s |", "Total", "10/15", "8/15"))
				So(lines[5], ShouldEqual, fmt.Sprintf(" %15s | %15s | %15s |", "Task B", "0/5", "5/5"))
			})
		})

		Convey("When one of the users does not exist", func() {
			stdout, _, err := run(endpoint, "--color=never", "alice", "ghost", "bob")

			Convey("Then the run should fail without output and stop fetching", func() {
				So(errors.Is(err, scores.ErrUserNotFound), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "User 'ghost' does not exist!")
				So(cli.ExitCode(err), ShouldEqual, cli.ExitFailure)
				So(stdout, ShouldBeEmpty)
				So(atomic.LoadInt32(&hits), ShouldEqual, 2)
			})
		})

		Convey("When users have different task sets in table mode", func() {
			stdout, _, err := run(endpoint, "--color=never", "alice", "carol")

			Convey("Then it should fail with a task mismatch", func() {
				So(errors.Is(err, report.ErrTaskMismatch), ShouldBeTrue)
				So(cli.ExitCode(err), ShouldEqual, cli.ExitFailure)
				So(stdout, ShouldBeEmpty)
			})
		})

		Convey("When a flag follows a username", func() {
			stdout, _, err := run(endpoint, "--color=never", "alice", "--mode=list")

			Convey("Then it should be a usage error without network traffic", func() {
				So(errors.Is(err, cli.ErrMisplacedFlag), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "--mode=list")
				So(cli.ExitCode(err), ShouldEqual, cli.ExitUsage)
				So(atomic.LoadInt32(&hits), ShouldEqual, 0)
				So(stdout, ShouldBeEmpty)
			})
		})

		Convey("When the body carries data after the task list", func() {
			stdout, _, err := run(endpoint, "--color=never", "trailer")

			Convey("Then it should fail as a decode error without output", func() {
				So(errors.Is(err, scores.ErrDecode), ShouldBeTrue)
				So(cli.ExitCode(err), ShouldEqual, cli.ExitFailure)
				So(stdout, ShouldBeEmpty)
			})
		})

		Convey("When verbose logging is requested", func() {
			_, stderr, err := run(endpoint, "--color=never", "-v", "alice")

			Convey("Then requests should be logged on stderr", func() {
				So(err, ShouldBeNil)
				So(stderr, ShouldContainSubstring, "fetching scores")
				So(stderr, ShouldContainSubstring, "request_id=")
				So(stderr, ShouldContainSubstring, "seconds=")
			})
		})

		Convey("When a metrics file is requested", func() {
			path := filepath.Join(t.TempDir(), "territoriali.prom")
			_, _, err := run(endpoint, "--color=never", "--metrics-file", path, "alice", "ghost")

			Convey("Then metrics should be written even though the run failed", func() {
				So(err, ShouldNotBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `territoriali_scores_fetch_requests_total{outcome="success"} 1`)
				So(string(data), ShouldContainSubstring, `territoriali_scores_fetch_requests_total{outcome="not_found"} 1`)
			})
		})

		Convey("When settings come from a config file", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			content := "mode: list\ncolor: never\nendpoint: " + srv.URL + "/api/user/{username}/scores\n"
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

			stdout, _, err := run("--config", path, "alice")

			Convey("Then they should apply", func() {
				So(err, ShouldBeNil)
				So(stdout, ShouldStartWith, "alice: 10/15\n")
			})
		})
	})
}

func TestRun_Usage(t *testing.T) {
	Convey("Given invalid invocations", t, func() {
		t.Setenv("TERRITORIALI_CONFIG", "")

		Convey("When the mode is unknown", func() {
			_, _, err := run("--mode=html", "alice")
			So(cli.ExitCode(err), ShouldEqual, cli.ExitUsage)
			So(errors.Is(err, report.ErrInvalidMode), ShouldBeTrue)
		})

		Convey("When the endpoint has no username placeholder", func() {
			_, _, err := run("--endpoint=http://localhost/scores", "alice")
			So(cli.ExitCode(err), ShouldEqual, cli.ExitUsage)
		})

		Convey("When a flag does not exist", func() {
			_, _, err := run("--frobnicate", "alice")
			So(cli.ExitCode(err), ShouldEqual, cli.ExitUsage)
		})

		Convey("When help is requested", func() {
			stdout, _, err := run("--help")
			So(err, ShouldBeNil)
			So(stdout, ShouldContainSubstring, "USERNAME...")
		})
	})
}

func TestExitCode(t *testing.T) {
	Convey("Given errors", t, func() {
		So(cli.ExitCode(nil), ShouldEqual, cli.ExitOK)
		So(cli.ExitCode(errors.New("plain")), ShouldEqual, cli.ExitFailure)
		So(cli.ExitCode(fmt.Errorf("wrapped: %w", &cli.ExitError{Code: 7, Err: errors.New("x")})), ShouldEqual, 7)
	})
}
