package game

import "fmt"

const (
	msgNameRequired    = "player_name is required"
	msgTryAgain        = "Try again."
	msgNotFound        = "Player not found."
	msgCatalogEmpty    = "No players are available today."
	msgNotStarted      = "Today's transfer game has not been started yet."
	msgInternal        = "Something went wrong, please try again later."
	msgTransferPending = "Guess which player made this transfer."
)

func msgSolved(name string) string {
	return fmt.Sprintf("Well done! You guessed it! The player was: %s.", name)
}

func msgExhausted(name string) string {
	return fmt.Sprintf("No attempts left. The player was: %s.", name)
}

func msgAlreadySolved(name string) string {
	return fmt.Sprintf("You have already guessed today's player: %s. Come back tomorrow.", name)
}
