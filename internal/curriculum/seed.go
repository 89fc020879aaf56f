package curriculum

// slotNames is the roadmap in display order.
var slotNames = []string{
	// Unit 1
	"Human Body Systems",
	"Cells",
	PracticeName,
	ReviewName,
	// Unit 2
	"Tissues and Organs",
	"Skeletal System",
	"Muscular System",
	PracticeName,
	"Nervous System",
	"Five Senses",
	PracticeName,
	"Endocrine System",
	ReviewName,
	// Unit 3
	"Circulatory System",
	"Respiratory System",
	PracticeName,
	"Digestive System",
	"Nutrition",
	PracticeName,
	"Water and Hydration",
	ReviewName,
	// Unit 4
	"Skin",
	"Immune System",
	PracticeName,
	"Germs",
	"Vaccines and Antibiotics",
	PracticeName,
	"Hygiene",
	ReviewName,
	// Unit 5
	"Exercise and Fitness",
	"Sleep and Growth",
	PracticeName,
	"Oral Health",
	"Puberty and Reproduction",
	PracticeName,
	ReviewName,
	// Unit 6
	"DNA and Heredity",
	"Cancer",
	PracticeName,
	"Allergies",
	"Asthma",
	PracticeName,
	"Medical Imaging",
	"Organ Transplants",
	PracticeName,
	ReviewName,
}

var unitSeed = []Unit{
	{Number: 1, Title: "Foundations of Human Biology", Start: 0, End: 3},
	{Number: 2, Title: "Structure and Control of the Body", Start: 4, End: 12},
	{Number: 3, Title: "Transport and Energy in the Body", Start: 13, End: 20},
	{Number: 4, Title: "Protection and Immune Health", Start: 21, End: 28},
	{Number: 5, Title: "Growth and Everyday Health", Start: 29, End: 35},
	{Number: 6, Title: "Genetics and Modern Medicine", Start: 36, End: 45},
}

func init() {
	t, err := buildTable(slotNames, unitSeed)
	if err != nil {
		panic(err)
	}
	tbl = t
}
