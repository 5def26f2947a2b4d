package profile

import "math/rand/v2"

// Logo is an entry of the tech-stack carousel. Icon is a simple-icons slug.
type Logo struct {
	ID   int
	Name string
	Icon string
}

var Logos = withIDs([]Logo{
	// 1st row
	{Name: "Typescript", Icon: "typescript"},
	{Name: "Nest.js", Icon: "nestjs"},
	{Name: "Node.js", Icon: "nodedotjs"},
	{Name: "Fastify", Icon: "fastify"},
	// 2nd row
	{Name: "PostgreSQL", Icon: "postgresql"},
	{Name: "DynamoDB", Icon: "amazondynamodb"},
	{Name: "AWS", Icon: "amazonwebservices"},
	{Name: "Prisma", Icon: "prisma"},
	// 3rd row
	{Name: "React", Icon: "react"},
	{Name: "Next.js", Icon: "nextdotjs"},
	{Name: "Supabase", Icon: "supabase"},
	{Name: "Tailwind", Icon: "tailwindcss"},
})

// CarouselColumns is the number of columns on the skills section.
const CarouselColumns = 3

func withIDs(logos []Logo) []Logo {
	for i := range logos {
		logos[i].ID = i + 1
	}
	return logos
}

// DistributeLogos shuffles logos and deals them round-robin into columns.
// Shorter columns are then topped up with random logos so every column
// cycles through the same number of entries.
func DistributeLogos(logos []Logo, columns int, rnd *rand.Rand) [][]Logo {
	if columns < 1 || len(logos) == 0 {
		return nil
	}

	shuffled := make([]Logo, len(logos))
	copy(shuffled, logos)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cols := make([][]Logo, columns)
	for i, logo := range shuffled {
		cols[i%columns] = append(cols[i%columns], logo)
	}

	maxLen := 0
	for _, col := range cols {
		maxLen = max(maxLen, len(col))
	}
	for i := range cols {
		for len(cols[i]) < maxLen {
			cols[i] = append(cols[i], shuffled[rnd.IntN(len(shuffled))])
		}
	}
	return cols
}
