package catalog

// SampleSnapshot is a small built-in catalog for local development and tests.
// The first player is Robert Lewandowski, so a picker that always returns
// index 0 targets him.
func SampleSnapshot() *Snapshot {
	return &Snapshot{
		Version: 1,
		Players: []PlayerInput{
			{Name: "Robert Lewandowski", Country: "Poland", League: "La Liga", Club: "FC Barcelona", Position: "Forward", Age: 36, ShirtNumber: 9},
			{Name: "Wojciech Szczęsny", Country: "Poland", League: "La Liga", Club: "FC Barcelona", Position: "Goalkeeper", Age: 34, ShirtNumber: 25},
			{Name: "Piotr Zieliński", Country: "Poland", League: "Serie A", Club: "Inter", Position: "Midfielder", Age: 30, ShirtNumber: 7},
			{Name: "Kylian Mbappé", Country: "France", League: "La Liga", Club: "Real Madrid", Position: "Forward", Age: 25, ShirtNumber: 9},
			{Name: "Jude Bellingham", Country: "England", League: "La Liga", Club: "Real Madrid", Position: "Midfielder", Age: 21, ShirtNumber: 5},
			{Name: "Erling Haaland", Country: "Norway", League: "Premier League", Club: "Manchester City", Position: "Forward", Age: 24, ShirtNumber: 9},
			{Name: "Virgil van Dijk", Country: "Netherlands", League: "Premier League", Club: "Liverpool", Position: "Defender", Age: 33, ShirtNumber: 4},
			{Name: "Mohamed Salah", Country: "Egypt", League: "Premier League", Club: "Liverpool", Position: "Forward", Age: 32, ShirtNumber: 11},
			{Name: "Harry Kane", Country: "England", League: "Bundesliga", Club: "Bayern Munich", Position: "Forward", Age: 31, ShirtNumber: 9},
			{Name: "Jan Bednarek", Country: "Poland", League: "Premier League", Club: "Southampton", Position: "Defender", Age: 28, ShirtNumber: 35},
			{Name: "Robert Gumny", Country: "Poland", League: "Bundesliga", Club: "FC Augsburg", Position: "Defender", Age: 26, ShirtNumber: 2},
			{Name: "Roberto Firmino", Country: "Brazil", League: "Saudi Pro League", Club: "Al-Ahli", Position: "Forward", Age: 33, ShirtNumber: 10},
		},
		Transfers: []TransferInput{
			{PlayerName: "Robert Lewandowski", FromClub: "Bayern Munich", ToClub: "FC Barcelona", Amount: "45000000", Date: "2022-07-19"},
			{PlayerName: "Harry Kane", FromClub: "Tottenham Hotspur", ToClub: "Bayern Munich", Amount: "100000000", Date: "2023-08-12"},
			{PlayerName: "Jude Bellingham", FromClub: "Borussia Dortmund", ToClub: "Real Madrid", Amount: "103000000", Date: "2023-06-14"},
			{PlayerName: "Erling Haaland", FromClub: "Borussia Dortmund", ToClub: "Manchester City", Amount: "60000000", Date: "2022-06-13"},
			{PlayerName: "Virgil van Dijk", FromClub: "Southampton", ToClub: "Liverpool", Amount: "84650000", Date: "2018-01-01"},
			{PlayerName: "Wojciech Szczęsny", FromClub: "Juventus", ToClub: "FC Barcelona", Amount: "0", Date: "2024-10-02"},
		},
	}
}
