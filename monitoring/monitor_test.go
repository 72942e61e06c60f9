package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/procsim/unitsim/model"
)

var _ = Describe("Monitor", func() {
	var (
		monitor *Monitor
		server  *httptest.Server
	)

	BeforeEach(func() {
		monitor = NewMonitor()

		b := model.NewBlock("exchanger")
		flow := b.NewVariable("flow_mol")
		flow.FixAt(10)

		duty := b.NewVariable("heat_duty")

		b.NewConstraint("duty_positive",
			[]*model.Variable{duty},
			func() float64 { return duty.Value() })

		monitor.RegisterBlock(b)

		server = httptest.NewServer(monitor.Handler())
		DeferCleanup(server.Close)
	})

	getJSON := func(path string, out any) int {
		resp, err := http.Get(server.URL + path)
		Expect(err).ToNot(HaveOccurred())
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			Expect(json.NewDecoder(resp.Body).Decode(out)).To(Succeed())
		}

		return resp.StatusCode
	}

	It("should list registered blocks", func() {
		var names []string
		status := getJSON("/api/blocks", &names)

		Expect(status).To(Equal(http.StatusOK))
		Expect(names).To(Equal([]string{"exchanger"}))
	})

	It("should refuse registering the same name twice", func() {
		Expect(func() {
			monitor.RegisterBlock(model.NewBlock("exchanger"))
		}).To(Panic())
	})

	It("should report block details", func() {
		var detail struct {
			Name      string `json:"name"`
			Variables []struct {
				Path  string   `json:"path"`
				Value *float64 `json:"value"`
				Fixed bool     `json:"fixed"`
			} `json:"variables"`
			Constraints []struct {
				Path     string   `json:"path"`
				Active   bool     `json:"active"`
				Residual *float64 `json:"residual"`
			} `json:"constraints"`
			DegreesOfFreedom int `json:"degrees_of_freedom"`
		}

		status := getJSON("/api/block/exchanger", &detail)

		Expect(status).To(Equal(http.StatusOK))
		Expect(detail.Name).To(Equal("exchanger"))
		Expect(detail.DegreesOfFreedom).To(Equal(0))

		Expect(detail.Variables).To(HaveLen(2))
		Expect(detail.Variables[0].Path).To(Equal("flow_mol"))
		Expect(detail.Variables[0].Fixed).To(BeTrue())
		Expect(*detail.Variables[0].Value).To(BeNumerically("~", 10))

		// heat_duty has no value yet, so it reports neither a value nor a
		// residual for the constraint using it.
		Expect(detail.Variables[1].Value).To(BeNil())
		Expect(detail.Constraints).To(HaveLen(1))
		Expect(detail.Constraints[0].Residual).To(BeNil())
		Expect(detail.Constraints[0].Active).To(BeTrue())
	})

	It("should report degrees of freedom", func() {
		var dof struct {
			FreeVariables     int `json:"free_variables"`
			ActiveConstraints int `json:"active_constraints"`
			DegreesOfFreedom  int `json:"degrees_of_freedom"`
		}

		status := getJSON("/api/block/exchanger/dof", &dof)

		Expect(status).To(Equal(http.StatusOK))
		Expect(dof.FreeVariables).To(Equal(1))
		Expect(dof.ActiveConstraints).To(Equal(1))
		Expect(dof.DegreesOfFreedom).To(Equal(0))
	})

	It("should report process resources", func() {
		var res struct {
			CPUPercent float64 `json:"cpu_percent"`
			MemoryMB   float64 `json:"memory_mb"`
		}

		status := getJSON("/api/resource", &res)

		Expect(status).To(Equal(http.StatusOK))
		Expect(res.MemoryMB).To(BeNumerically(">", 0))
	})

	It("should return 404 for unknown blocks", func() {
		resp, err := http.Get(server.URL + "/api/block/turbine")

		Expect(err).ToNot(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
	})
})
