package dto

type ServiceItem struct {
	Title       string
	Description string
}

type Testimonial struct {
	Quote string
	Name  string
	Org   string
}

// ContactForm adalah nilai form kontak yang dirender ulang saat validasi gagal.
type ContactForm struct {
	Name         string
	Organization string
	PhoneOrEmail string
	Needs        string
}

type LandingView struct {
	PageTitle     string
	ContactEmail  string
	Badges        []string
	Services      []ServiceItem
	Testimonials  []Testimonial
	Steps         []string
	Contact       ContactForm
	ContactErrors map[string]string
}

var (
	landingBadges = []string{"Respons cepat (H+1)", "Gold-standard QC", "Data siap presentasi"}

	landingServices = []ServiceItem{
		{"Desain kuesioner", "Struktur pertanyaan, skala, logika, dan wording yang netral agar hasilnya valid."},
		{"Distribusi responden", "Panel, komunitas, internal database, atau target spesifik (demografi/segmentasi)."},
		{"Analisis & laporan", "Tabulasi, cross-tab, insight, dan rekomendasi yang siap dipresentasikan."},
	}

	landingTestimonials = []Testimonial{
		{
			Quote: "Brief kami kompleks tapi tim Survei Kita bisa menyederhanakan jadi kuesioner yang rapi. Laporan enak dibaca, insight-nya actionable.",
			Name:  "Head of Marketing",
			Org:   "Brand FMCG",
		},
		{
			Quote: "Responden terkumpul tepat waktu, QC-nya ketat. Kami pakai hasilnya untuk bahan presentasi ke stakeholder tanpa revisi besar.",
			Name:  "Program Manager",
			Org:   "NGO / Komunitas",
		},
		{
			Quote: "Yang paling membantu: konsultasi interpretasi hasil. Jadi bukan cuma angka, tapi arahan langkah berikutnya.",
			Name:  "Product Lead",
			Org:   "Startup",
		},
	}

	landingSteps = []string{
		"Konsultasi kebutuhan (15-30 menit)",
		"Draft kuesioner + sampling plan",
		"Pengumpulan respon",
		"Analisis + laporan",
	}
)

// NewLandingView mengisi konten statis landing page. errors boleh nil.
func NewLandingView(contactEmail string, form ContactForm, errors map[string]string) LandingView {
	if errors == nil {
		errors = map[string]string{}
	}
	return LandingView{
		ContactEmail:  contactEmail,
		Badges:        landingBadges,
		Services:      landingServices,
		Testimonials:  landingTestimonials,
		Steps:         landingSteps,
		Contact:       form,
		ContactErrors: errors,
	}
}
