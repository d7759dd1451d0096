package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/simon/client/audio"
	"github.com/cbodonnell/simon/client/game"
	"github.com/cbodonnell/simon/client/network"
	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	debug := flag.Bool("debug", false, "Show the debug overlay")
	serverURL := flag.String("server-url", "", "Game server websocket URL, e.g. ws://localhost:9090/ws. Plays locally when empty")
	apiURL := flag.String("api-url", "", "API server URL that local results are uploaded to")
	player := flag.String("player", "", "Player name recorded with results")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())

	soundManager := audio.NewSoundManager(audio.NewSoundManagerOptions{
		Muted:  *mute,
		Volume: audio.DefaultVolume,
	})
	if err := soundManager.Initialize(); err != nil {
		log.Warn("Playing without sound: %v", err)
	}
	defer soundManager.Close()

	var driver game.Driver
	if *serverURL != "" {
		networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
			ServerURL: *serverURL,
			Player:    *player,
		})
		if err := networkManager.Start(); err != nil {
			panic(fmt.Sprintf("Failed to connect to server: %v", err))
		}
		driver, err = game.NewRemoteDriver(game.NewRemoteDriverOptions{
			Connection: networkManager,
		})
		if err != nil {
			panic(fmt.Sprintf("Failed to create remote driver: %v", err))
		}
	} else {
		opts := game.NewLocalDriverOptions{
			Player: *player,
		}
		if *apiURL != "" {
			opts.Poster = network.NewResultsClient(network.NewResultsClientOptions{
				APIURL: *apiURL,
			})
		}
		driver = game.NewLocalDriver(opts)
	}

	g, err := game.NewGame(game.NewGameOptions{
		Debug:  *debug,
		Driver: driver,
		Sound:  soundManager,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(constants.ScreenWidth, constants.ScreenHeight)
	ebiten.SetWindowTitle(constants.TitleText)
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
