package epr_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quansim/internal/epr"
	"github.com/san-kum/quansim/internal/hamiltonian"
	"github.com/san-kum/quansim/internal/quantum"
)

var _ = Describe("CalculateQuantumParameters", func() {
	var opts epr.Options

	BeforeEach(func() {
		opts = epr.DefaultOptions()
	})

	Context("single mode with a single junction", func() {
		const zpf = 0.05

		It("reproduces the Duffing anharmonicity", func() {
			res, err := epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{zpf}}, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.FrequenciesGHz).To(HaveLen(1))
			Expect(res.FrequenciesGHz[0]).To(BeNumerically("<", 5.0))
			Expect(res.FrequenciesGHz[0]).To(BeNumerically(">", 4.999))

			// first order perturbation theory: alpha = -E_J zpf^4 / 2
			expected := quantum.JosephsonFrequency(1e-8) * math.Pow(zpf, 4) / 2 / quantum.Mega
			Expect(res.ChiMHz[0][0]).To(BeNumerically(">", 0))
			Expect(res.ChiMHz[0][0]).To(BeNumerically("~", expected, 0.01*expected))

			shift := (5.0 - res.FrequenciesGHz[0]) * 1e3
			Expect(shift).To(BeNumerically("~", expected, 0.01*expected))
		})

		It("is idempotent", func() {
			a, err := epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{zpf}}, opts)
			Expect(err).NotTo(HaveOccurred())
			b, err := epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{zpf}}, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.FrequenciesGHz).To(Equal(a.FrequenciesGHz))
			Expect(b.ChiMHz).To(Equal(a.ChiMHz))
		})

		It("returns the separated Hamiltonian on request", func() {
			opts.ReturnHamiltonian = true
			res, err := epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{zpf}}, opts)
			Expect(err).NotTo(HaveOccurred())

			sep, ok := res.Hamiltonian.(hamiltonian.Separated)
			Expect(ok).To(BeTrue())
			Expect(sep.Dim()).To(Equal(epr.DefaultFockTruncation))
			Expect(sep.Linear.At(1, 1)).To(BeNumerically("~", 5e9, 1e-3))
		})

		It("omits the Hamiltonian by default", func() {
			res, err := epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{zpf}}, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Hamiltonian).To(BeNil())
		})
	})

	Context("two modes sharing a junction", func() {
		freqs := []float64{5.0, 7.2}
		zpfs := [][]float64{{0.15}, {0.02}}

		BeforeEach(func() {
			opts.FockTruncation = 6
			opts.CosineTruncation = 6
		})

		It("returns an exactly symmetric chi matrix", func() {
			res, err := epr.CalculateQuantumParameters(freqs, []float64{1e-8}, zpfs, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.ChiMHz).To(HaveLen(2))
			Expect(res.ChiMHz[0][1]).To(Equal(res.ChiMHz[1][0]))
			Expect(res.ChiMHz[0][0]).To(BeNumerically(">", res.ChiMHz[1][1]))
			Expect(res.ChiMHz[0][1]).To(BeNumerically(">", 0))
		})

		It("approximates chi_ab = 2 sqrt(alpha_a alpha_b)", func() {
			res, err := epr.CalculateQuantumParameters(freqs, []float64{1e-8}, zpfs, opts)
			Expect(err).NotTo(HaveOccurred())

			geometric := 2 * math.Sqrt(res.ChiMHz[0][0]*res.ChiMHz[1][1])
			Expect(res.ChiMHz[0][1]).To(BeNumerically("~", geometric, 0.05*geometric))
		})

		It("recovers the linear frequencies without coupling", func() {
			res, err := epr.CalculateQuantumParameters(freqs, []float64{1e-8}, [][]float64{{0}, {0}}, opts)
			Expect(err).NotTo(HaveOccurred())

			for i, f := range freqs {
				Expect(res.FrequenciesGHz[i]).To(BeNumerically("~", f, 1e-6*f))
				for j := range freqs {
					Expect(res.ChiMHz[i][j]).To(BeNumerically("~", 0, 1e-9))
				}
			}
		})
	})

	DescribeTable("rejects invalid input",
		func(freqs, inductances []float64, zpfs [][]float64, want error) {
			_, err := epr.CalculateQuantumParameters(freqs, inductances, zpfs, opts)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)
		},
		Entry("frequency given in Hz", []float64{1e7}, []float64{1e-8}, [][]float64{{0.05}}, quantum.ErrUnitValidation),
		Entry("inductance in nH", []float64{5.0}, []float64{5e-3}, [][]float64{{0.05}}, quantum.ErrUnitValidation),
		Entry("NaN participation", []float64{5.0}, []float64{1e-8}, [][]float64{{math.NaN()}}, quantum.ErrNaNInput),
		Entry("NaN frequency", []float64{math.NaN()}, []float64{1e-8}, [][]float64{{0.05}}, quantum.ErrNaNInput),
		Entry("transposed participation", []float64{5.0, 6.0}, []float64{1e-8}, [][]float64{{0.05, 0.01}}, quantum.ErrShapeMismatch),
		Entry("missing junction column", []float64{5.0}, []float64{1e-8, 2e-8}, [][]float64{{0.05}}, quantum.ErrShapeMismatch),
		Entry("no modes", []float64{}, []float64{1e-8}, [][]float64{}, quantum.ErrEmptyComposite),
	)

	It("rejects invalid truncations", func() {
		opts.FockTruncation = 1
		_, err := epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{0.05}}, opts)
		Expect(errors.Is(err, quantum.ErrInvalidDimension)).To(BeTrue())

		opts = epr.DefaultOptions()
		opts.CosineTruncation = 0
		_, err = epr.CalculateQuantumParameters([]float64{5.0}, []float64{1e-8}, [][]float64{{0.05}}, opts)
		Expect(errors.Is(err, quantum.ErrInvalidTruncation)).To(BeTrue())
	})
})

var _ = Describe("unit conversion", func() {
	It("round-trips GHz through Hz", func() {
		ghz := []float64{4.1234567, 5.0, 7.999999, 0.001}
		back := epr.HzToGHz(epr.GHzToHz(ghz))
		for i := range ghz {
			Expect(back[i]).To(BeNumerically("~", ghz[i], 1e-15*ghz[i]))
		}
	})

	It("accepts values just inside the bounds", func() {
		Expect(epr.ValidateUnits([]float64{999999}, []float64{9.99e-4})).To(Succeed())
	})
})

var _ = Describe("ZPFsFromParticipation", func() {
	It("inverts p = 2 E_J zpf^2 / f", func() {
		ej := quantum.JosephsonFrequency(1e-8)
		p := 2 * ej * 0.05 * 0.05 / 5e9

		zpfs, err := epr.ZPFsFromParticipation([]float64{5.0}, []float64{1e-8}, [][]float64{{p}}, [][]float64{{-1}})
		Expect(err).NotTo(HaveOccurred())
		Expect(zpfs[0][0]).To(BeNumerically("~", -0.05, 1e-12))
	})

	It("defaults to positive signs", func() {
		zpfs, err := epr.ZPFsFromParticipation([]float64{5.0, 6.0}, []float64{1e-8}, [][]float64{{0.9}, {0.01}}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(zpfs[0][0]).To(BeNumerically(">", zpfs[1][0]))
		Expect(zpfs[1][0]).To(BeNumerically(">", 0))
	})

	It("rejects negative participation and bad shapes", func() {
		_, err := epr.ZPFsFromParticipation([]float64{5.0}, []float64{1e-8}, [][]float64{{-0.1}}, nil)
		Expect(errors.Is(err, quantum.ErrUnitValidation)).To(BeTrue())

		_, err = epr.ZPFsFromParticipation([]float64{5.0}, []float64{1e-8}, [][]float64{{0.1, 0.2}}, nil)
		Expect(errors.Is(err, quantum.ErrShapeMismatch)).To(BeTrue())

		_, err = epr.ZPFsFromParticipation([]float64{5.0}, []float64{1e-8}, [][]float64{{math.NaN()}}, nil)
		Expect(errors.Is(err, quantum.ErrNaNInput)).To(BeTrue())
	})
})

var _ = Describe("Result.Flatten", func() {
	res := &epr.Result{
		FrequenciesGHz: []float64{5.1, 7.3},
		ChiMHz:         [][]float64{{200, 1.5}, {1.5, 0.003}},
	}

	It("labels every unique element", func() {
		flat, err := res.Flatten([]string{"qubit", "readout"})
		Expect(err).NotTo(HaveOccurred())
		Expect(flat).To(HaveLen(5))
		Expect(flat).To(HaveKeyWithValue("qubit - readout Disp. (MHz)", 1.5))
		Expect(flat).To(HaveKeyWithValue("qubit Anharm. (MHz)", 200.0))
		Expect(flat).To(HaveKeyWithValue("readout Anharm. (MHz)", 0.003))
		Expect(flat).To(HaveKeyWithValue("readout Freq. (GHz)", 7.3))
	})

	It("requires one label per mode", func() {
		_, err := res.Flatten([]string{"qubit"})
		Expect(errors.Is(err, quantum.ErrShapeMismatch)).To(BeTrue())
	})
})
