package webui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sashabaranov/go-openai"

	"github.com/handwave/handwave/core/executor"
	"github.com/handwave/handwave/core/generator"
	"github.com/handwave/handwave/core/registry"
	"github.com/handwave/handwave/core/types"
	"github.com/handwave/handwave/pkg/llm"
	"github.com/handwave/handwave/webui"
)

func respondWith(content string) *llm.MockClient {
	return &llm.MockClient{
		CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: content}},
				},
			}, nil
		},
	}
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(resp *http.Response) map[string]any {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	out := map[string]any{}
	Expect(json.Unmarshal(data, &out)).To(Succeed())
	return out
}

var _ = Describe("Control surface", func() {
	var (
		path string
		reg  *registry.Registry
	)

	newApp := func(client llm.ChatCompleter) *webui.App {
		exec := executor.New(reg)
		return webui.NewApp(
			webui.WithRegistry(reg),
			webui.WithGenerator(generator.New(client, "test-model")),
			webui.WithExecutor(exec),
		)
	}

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "webui_test_*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		path = filepath.Join(dir, "custom_actions.json")
		reg = registry.New(path)
	})

	It("generates and persists an action for a safe prompt", func() {
		app := newApp(respondWith(`import "os/exec"

func Run() error {
	return exec.Command("gnome-calculator").Start()
}`))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/generate-and-save", map[string]string{"prompt": "open calculator"}), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		body := decode(resp)
		Expect(body["status"]).To(Equal("ok"))
		Expect(body["id"]).To(MatchRegexp(`^custom_[0-9a-f]{8}$`))
		Expect(body["prompt"]).To(Equal("open calculator"))

		Expect(reg.Load()).To(HaveLen(1))
	})

	It("rejects a destructive candidate and persists nothing", func() {
		app := newApp(respondWith(`import "os"

func Run() error {
	return os.RemoveAll("/")
}`))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/generate", map[string]string{"prompt": "delete all files"}), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

		body := decode(resp)
		Expect(body["error"]).To(ContainSubstring("RemoveAll"))
		// The raw candidate comes back for diagnosis, unexecuted.
		Expect(body["code"]).To(ContainSubstring("os.RemoveAll"))

		Expect(reg.Load()).To(BeEmpty())
	})

	It("requires a prompt", func() {
		app := newApp(respondWith("irrelevant"))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/generate", map[string]string{}), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("reports generation failures as bad gateway", func() {
		client := &llm.MockClient{
			CreateChatCompletionFunc: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, context.DeadlineExceeded
			},
		}
		app := newApp(client)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/generate", map[string]string{"prompt": "open calculator"}), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))
	})

	Describe("approve", func() {
		It("screens caller-supplied code instead of trusting the entry path", func() {
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/approve", map[string]string{
				"id":     "custom_0000000x",
				"prompt": "p",
				"code":   `import "net"` + "\n\nfunc Run() error { return nil }",
			}), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(decode(resp)["error"]).To(ContainSubstring("Disallowed imports"))

			Expect(reg.Load()).To(BeEmpty())
		})

		It("persists safe caller-supplied code", func() {
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/approve", map[string]string{
				"id":     "custom_00000001",
				"prompt": "wait",
				"code":   `import "time"` + "\n\nfunc Run() error {\n\ttime.Sleep(time.Millisecond)\n\treturn nil\n}",
			}), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			Expect(reg.Load()).To(HaveKey("custom_00000001"))
		})
	})

	Describe("list", func() {
		It("exposes id and prompt but never code", func() {
			Expect(reg.Save(types.Action{ID: "custom_00000001", Prompt: "wait", Code: "secret"})).To(Succeed())
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodGet, "/api/actions", nil), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			defer resp.Body.Close()
			data, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("custom_00000001"))
			Expect(string(data)).NotTo(ContainSubstring("secret"))
		})
	})

	Describe("delete", func() {
		It("removes a stored action", func() {
			Expect(reg.Save(types.Action{ID: "custom_00000001", Prompt: "wait", Code: "x"})).To(Succeed())
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/actions/custom_00000001", nil), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(reg.Load()).To(BeEmpty())
		})

		It("reports not-found for an unknown id", func() {
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/actions/custom_ffffffff", nil), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("execute", func() {
		It("reports not-found on an empty registry", func() {
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/custom_00000000/run", nil), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("runs a stored action and echoes its prompt", func() {
			Expect(reg.Save(types.Action{
				ID:     "custom_00000001",
				Prompt: "wait a moment",
				Code:   `import "time"` + "\n\nfunc Run() error {\n\ttime.Sleep(time.Millisecond)\n\treturn nil\n}",
			})).To(Succeed())
			app := newApp(respondWith("unused"))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/custom_00000001/run", nil), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			body := decode(resp)
			Expect(body["status"]).To(Equal("ok"))
			Expect(body["action"]).To(Equal("wait a moment"))
		})

		It("refuses an action tampered with out of band", func() {
			Expect(reg.Save(types.Action{
				ID:     "custom_00000001",
				Prompt: "benign",
				Code:   `import "time"` + "\n\nfunc Run() error {\n\treturn nil\n}",
			})).To(Succeed())

			tampered := map[string]types.Action{
				"custom_00000001": {
					ID:     "custom_00000001",
					Prompt: "benign",
					Code:   `import "os"` + "\n\nfunc Run() error {\n\treturn os.RemoveAll(\"/\")\n}",
				},
			}
			data, err := json.Marshal(tampered)
			Expect(err).NotTo(HaveOccurred())
			Expect(os.WriteFile(path, data, 0644)).To(Succeed())

			app := newApp(respondWith("unused"))
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/actions/custom_00000001/run", nil), -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(decode(resp)["error"]).To(ContainSubstring("RemoveAll"))
		})
	})

	It("reports health with the stored action count", func() {
		Expect(reg.Save(types.Action{ID: "custom_00000001", Prompt: "wait", Code: "x"})).To(Succeed())
		app := newApp(respondWith("unused"))

		resp, err := app.Test(jsonRequest(http.MethodGet, "/", nil), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		body := decode(resp)
		Expect(body["status"]).To(Equal("ok"))
		Expect(body["commands"]).To(ContainElements("next_tab", "copy", "scroll_down"))
		Expect(body["custom_actions"]).To(BeNumerically("==", 1))
		Expect(body["degraded"]).To(BeFalse())
	})
})
