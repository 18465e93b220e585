// Package monitoring serves the state of a running paging simulation over
// HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/monitoring/web"
	"github.com/sarchlab/pagingsim/sim/id"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// An Inspector gives serialized access to a paging system.
type Inspector interface {
	Inspect(f func(sys *mmu.System))
}

// Monitor turns a simulation into a server that external tools can query.
type Monitor struct {
	inspector   Inspector
	portNumber  int
	idGenerator id.IDGenerator
	logger      *slog.Logger

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		idGenerator: id.NewIDGenerator(),
		logger:      slog.Default(),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		m.logger.Warn("monitoring port not allowed, using a random port",
			"port", portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logger
	return m
}

// RegisterSimulation sets the simulation to be monitored.
func (m *Monitor) RegisterSimulation(i Inspector) {
	m.inspector = i
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGenerator.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the list being served.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", m.listStats)
	r.HandleFunc("/api/pages", m.listPages)
	r.HandleFunc("/api/frames", m.listFrames)
	r.HandleFunc("/api/load_order", m.listLoadOrder)
	r.HandleFunc("/api/system", m.listSystemDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	m.server = &http.Server{
		Handler:           m.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			dieOnErr(err)
		}
	}()

	return url
}

// OpenBrowser opens the monitoring page in the default browser.
func (m *Monitor) OpenBrowser(url string) {
	if err := browser.OpenURL(url); err != nil {
		m.logger.Warn("cannot open browser", "url", url, "error", err)
	}
}

// StopServer closes the listener of the monitor.
func (m *Monitor) StopServer() error {
	if m.server == nil {
		return nil
	}

	return m.server.Close()
}

func (m *Monitor) inspectOr503(
	w http.ResponseWriter,
	f func(sys *mmu.System),
) {
	if m.inspector == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, err := w.Write([]byte("No simulation registered"))
		dieOnErr(err)

		return
	}

	m.inspector.Inspect(f)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

type statsRsp struct {
	mmu.Statistics
	References uint64  `json:"references"`
	FaultRate  float64 `json:"fault_rate"`
}

func (m *Monitor) listStats(w http.ResponseWriter, _ *http.Request) {
	m.inspectOr503(w, func(sys *mmu.System) {
		stats := sys.Stats()

		writeJSON(w, statsRsp{
			Statistics: stats,
			References: stats.References(),
			FaultRate:  stats.FaultRate(),
		})
	})
}

type pageRsp struct {
	Page      int    `json:"page"`
	Present   bool   `json:"present"`
	Frame     int    `json:"frame"`
	Modified  bool   `json:"modified"`
	Timestamp uint32 `json:"timestamp"`
}

func (m *Monitor) listPages(w http.ResponseWriter, _ *http.Request) {
	m.inspectOr503(w, func(sys *mmu.System) {
		pages := sys.Pages()

		rsp := make([]pageRsp, len(pages))
		for i, p := range pages {
			rsp[i] = pageRsp{
				Page:      i,
				Present:   p.Present,
				Frame:     p.Frame,
				Modified:  p.Modified,
				Timestamp: p.Timestamp,
			}
		}

		writeJSON(w, rsp)
	})
}

type frameRsp struct {
	Frame int `json:"frame"`
	Page  int `json:"page"`
}

func (m *Monitor) listFrames(w http.ResponseWriter, _ *http.Request) {
	m.inspectOr503(w, func(sys *mmu.System) {
		frames := sys.Frames()

		rsp := make([]frameRsp, len(frames))
		for i, f := range frames {
			rsp[i] = frameRsp{Frame: i, Page: f.Page}
		}

		writeJSON(w, rsp)
	})
}

type loadOrderRsp struct {
	Policy     string `json:"policy"`
	LoadOrder  []int  `json:"load_order"`
	FreeFrames []int  `json:"free_frames"`
	Clock      uint32 `json:"clock"`
}

func (m *Monitor) listLoadOrder(w http.ResponseWriter, _ *http.Request) {
	m.inspectOr503(w, func(sys *mmu.System) {
		rsp := loadOrderRsp{
			Policy:     sys.Policy().String(),
			LoadOrder:  sys.LoadOrder(),
			FreeFrames: sys.FreeFrames(),
			Clock:      sys.Clock(),
		}

		if rsp.LoadOrder == nil {
			rsp.LoadOrder = []int{}
		}

		if rsp.FreeFrames == nil {
			rsp.FreeFrames = []int{}
		}

		writeJSON(w, rsp)
	})
}

func (m *Monitor) listSystemDetails(w http.ResponseWriter, _ *http.Request) {
	m.inspectOr503(w, func(sys *mmu.System) {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(sys)
		serializer.SetMaxDepth(1)
		err := serializer.Serialize(w)

		dieOnErr(err)
	})
}

type fieldReq struct {
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	fields := strings.Split(req.FieldName, ".")

	m.inspectOr503(w, func(sys *mmu.System) {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(sys)
		serializer.SetMaxDepth(1)

		err = serializer.SetEntryPoint(fields)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "Error: %s", err)

			return
		}

		err = serializer.Serialize(w)
		dieOnErr(err)
	})
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	rsp := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		rsp = append(rsp, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
