package shared

// SeedSearch is one provider search the ingestor runs at startup.
type SeedSearch struct {
	Query string
	Near  string
}

// SeedSearches seeds the catalog with places across the launch cities.
var SeedSearches = []SeedSearch{
	{Query: "restaurant", Near: "Austin, TX"},
	{Query: "coffee", Near: "Austin, TX"},
	{Query: "bar", Near: "Austin, TX"},
	{Query: "restaurant", Near: "Houston, TX"},
	{Query: "coffee", Near: "Houston, TX"},
	{Query: "restaurant", Near: "Dallas, TX"},
	{Query: "cafe", Near: "Dallas, TX"},
	{Query: "restaurant", Near: "San Antonio, TX"},
}
