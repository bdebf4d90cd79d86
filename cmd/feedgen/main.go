// feedgen writes a synthetic job feed, useful for exercising the ingestion
// pipeline against a local HTTP server or a file.
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"
)

type jobTemplate struct {
	title       string
	company     string
	description string
}

var templates = []jobTemplate{
	{
		title:       "Chauffeur SPL H/F",
		company:     "Transports Durand",
		description: "Permis CE et FIMO exigés. CDI temps plein, salaire de 2200 à 2600 € par mois selon expérience. Livraisons régionales au départ de Lyon, découchés occasionnels.",
	},
	{
		title:       "Chauffeur PL régional",
		company:     "Logistique Ouest",
		description: "Permis C requis, ADR apprécié. CDD de 6 mois renouvelable, 13 € par heure. Tournées de jour au départ de Nantes, pas de découché.",
	},
	{
		title:       "Conducteur routier international",
		company:     "EuroFret",
		description: "Permis CE, carte conducteur à jour. Temps plein, à partir de 30000 € par an. Longue distance France-Allemagne, 2 ans d'expérience minimum.",
	},
	{
		title:       "Chauffeur-livreur VL",
		company:     "Colis Express",
		description: "Permis B depuis 2 ans. Temps partiel possible, 11,88 € par heure. Livraisons du dernier kilomètre sur Paris et petite couronne.",
	},
	{
		title:       "Cariste préparateur de commandes",
		company:     "Entrepôts du Rhône",
		description: "CACES 1, 3 et 5 exigés. Intérim longue mission, 12,50 € par heure plus primes. Horaires en 2x8 à Villeurbanne.",
	},
	{
		title:       "Chauffeur benne TP",
		company:     "BTP Provence",
		description: "Permis CE, expérience en benne TP souhaitée. CDI, salaire selon profil. Chantiers autour de Marseille, travail en journée.",
	},
	{
		title:       "Conducteur SPL frigo de nuit",
		company:     "FrigoTrans",
		description: "Permis CE et expérience frigorifique. CDI de nuit, de 2400 à 2800 € par mois. Départ de Rungis, retours quotidiens.",
	},
	{
		title:       "Chauffeur autocar scolaire",
		company:     "Voyages Bertrand",
		description: "Permis D et FIMO voyageurs. Temps partiel en période scolaire, complément possible. Secteur de Rennes.",
	},
	{
		title:       "Comptable général",
		company:     "Cabinet Martin",
		description: "Tenue de la comptabilité générale et déclarations fiscales. CDI, 32000 € par an. Poste basé à Bordeaux, télétravail partiel.",
	},
	{
		title:       "Développeur web",
		company:     "Studio Numérique",
		description: "Stack moderne, produit interne. CDI, de 40000 à 50000 € par an. Full remote possible, équipe à Toulouse.",
	},
}

type feedJob struct {
	XMLName     xml.Name `xml:"job"`
	Title       string   `xml:"title"`
	Company     string   `xml:"company"`
	GUID        string   `xml:"guid"`
	URL         string   `xml:"url"`
	PubDate     string   `xml:"pubdate"`
	Description string   `xml:"description"`
}

type feedDoc struct {
	XMLName xml.Name `xml:"source"`
	Jobs    []feedJob
}

var (
	outFileName = flag.String("out", "", "output file (default: stdout)")
	jobCount    = flag.Int("count", 25, "number of jobs to generate")
	seed        = flag.Int64("seed", 0, "random seed (0 = time-based)")
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func generate(rng *rand.Rand, count int, now time.Time) *feedDoc {
	doc := &feedDoc{}
	for i := 0; i < count; i++ {
		template := templates[rng.Intn(len(templates))]
		published := now.Add(-time.Duration(rng.Intn(14*24)) * time.Hour)
		doc.Jobs = append(doc.Jobs, feedJob{
			Title:       template.title,
			Company:     template.company,
			GUID:        fmt.Sprintf("feedgen-%d", i+1),
			URL:         fmt.Sprintf("http://example.com/jobs/%d", i+1),
			PubDate:     published.Format(time.RFC1123Z),
			Description: template.description,
		})
	}
	return doc
}

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	doc := generate(rng, *jobCount, time.Now())

	out := os.Stdout
	if *outFileName != "" {
		f, err := os.Create(*outFileName)
		if err != nil {
			slog.Error("failed to create output file", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	fmt.Fprint(out, xml.Header)
	encoder := xml.NewEncoder(out)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		slog.Error("failed to encode feed", "err", err)
		os.Exit(1)
	}
	fmt.Fprintln(out)

	slog.Info("feed generated", "jobs", *jobCount, "seed", s)
}
