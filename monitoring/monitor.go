// Package monitoring exposes a model over HTTP for inspection. The monitor
// serves the registered blocks as JSON: variable values and fixed flags,
// constraint activity and residuals, and the degree-of-freedom count. It is
// meant for poking at a model that fails to initialize, from a browser or
// curl, while the process is still alive.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/procsim/unitsim/model"
)

// Monitor serves registered model blocks over HTTP.
type Monitor struct {
	portNumber  int
	openBrowser bool

	lock   sync.Mutex
	names  []string
	blocks map[string]*model.Block
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		blocks: make(map[string]*model.Block),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the dashboard in the default browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterBlock registers the subtree rooted at b under the block's name.
func (m *Monitor) RegisterBlock(b *model.Block) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.blocks[b.Name()]; ok {
		panic("block " + b.Name() + " registered twice")
	}

	m.names = append(m.names, b.Name())
	m.blocks[b.Name()] = b
}

// StartServer starts the monitor as a web server, on a random port unless
// one was configured.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := "http://localhost:" +
		strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring model with %s\n", url)

	go func() {
		dieOnErr(http.Serve(listener, m.Handler()))
	}()

	if m.openBrowser {
		dieOnErr(browser.OpenURL(url + "/api/blocks"))
	}
}

// Handler returns the route table without starting a server. It exists so
// tests can drive the endpoints directly.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/blocks", m.listBlocks)
	r.HandleFunc("/api/block/{name}", m.blockDetails)
	r.HandleFunc("/api/block/{name}/dof", m.blockDOF)
	r.HandleFunc("/api/resource", m.listResources)

	return r
}

type variableJSON struct {
	Path  string   `json:"path"`
	Value *float64 `json:"value,omitempty"`
	Fixed bool     `json:"fixed"`
}

type constraintJSON struct {
	Path     string   `json:"path"`
	Active   bool     `json:"active"`
	Scale    float64  `json:"scale"`
	Residual *float64 `json:"residual,omitempty"`
}

type blockJSON struct {
	Name             string           `json:"name"`
	Variables        []variableJSON   `json:"variables"`
	Constraints      []constraintJSON `json:"constraints"`
	DegreesOfFreedom int              `json:"degrees_of_freedom"`
}

type dofJSON struct {
	FreeVariables     int `json:"free_variables"`
	ActiveConstraints int `json:"active_constraints"`
	DegreesOfFreedom  int `json:"degrees_of_freedom"`
}

func (m *Monitor) listBlocks(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	names := append([]string{}, m.names...)
	m.lock.Unlock()

	writeJSON(w, names)
}

func (m *Monitor) blockDetails(w http.ResponseWriter, r *http.Request) {
	b := m.findBlockOr404(w, mux.Vars(r)["name"])
	if b == nil {
		return
	}

	detail := blockJSON{
		Name:             b.Name(),
		Variables:        []variableJSON{},
		Constraints:      []constraintJSON{},
		DegreesOfFreedom: b.DegreesOfFreedom(),
	}

	b.Walk(func(blk *model.Block) {
		for _, v := range blk.Variables() {
			path, _ := b.PathOfVariable(v)
			entry := variableJSON{Path: path, Fixed: v.IsFixed()}

			if v.IsSet() {
				value := v.Value()
				entry.Value = &value
			}

			detail.Variables = append(detail.Variables, entry)
		}

		for _, c := range blk.Constraints() {
			path, _ := b.PathOfConstraint(c)
			entry := constraintJSON{
				Path:   path,
				Active: c.IsActive(),
				Scale:  c.Scale(),
			}

			if residual, ok := tryResidual(c); ok {
				entry.Residual = &residual
			}

			detail.Constraints = append(detail.Constraints, entry)
		}
	})

	writeJSON(w, detail)
}

func (m *Monitor) blockDOF(w http.ResponseWriter, r *http.Request) {
	b := m.findBlockOr404(w, mux.Vars(r)["name"])
	if b == nil {
		return
	}

	writeJSON(w, dofJSON{
		FreeVariables:     len(b.FreeVariables()),
		ActiveConstraints: len(b.ActiveConstraints()),
		DegreesOfFreedom:  b.DegreesOfFreedom(),
	})
}

func (m *Monitor) findBlockOr404(
	w http.ResponseWriter,
	name string,
) *model.Block {
	m.lock.Lock()
	b, ok := m.blocks[name]
	m.lock.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}

	return b
}

type resourceJSON struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
}

// listResources reports the CPU and memory use of the running process, which
// matters for large composites where Jacobian evaluation dominates.
func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cpu, err := p.CPUPercent()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceJSON{
		CPUPercent: cpu,
		MemoryMB:   float64(mem.RSS) / (1024 * 1024),
	})
}

// tryResidual evaluates a constraint residual, reporting false when some
// variable has no value yet.
func tryResidual(c *model.Constraint) (residual float64, ok bool) {
	for _, v := range c.Variables() {
		if !v.IsSet() {
			return 0, false
		}
	}

	return c.Residual(), true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	dieOnErr(json.NewEncoder(w).Encode(v))
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
