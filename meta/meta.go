// meta/meta.go
package meta

// EPISODES defines the number of self-play episodes of a training run.
const EPISODES = 50000

// EPSILON defines the starting exploration probability of a learner.
const EPSILON = 1.0

// EPSILON_DECAY defines the factor epsilon is multiplied by after a rewarded episode.
const EPSILON_DECAY = 0.995

// EPSILON_FLOOR defines the lowest epsilon decay can reach.
const EPSILON_FLOOR = 0.15

// WIN_REWARD defines the reward of the winning side.
const WIN_REWARD = 6

// LOSS_REWARD defines the reward of the losing side.
const LOSS_REWARD = -3

// DRAW_REWARD defines the reward of both sides after a draw.
const DRAW_REWARD = 1

// EVALUATION_GAMES defines the number of games played against the random baseline.
const EVALUATION_GAMES = 1000

// LOG_INTERVAL defines how many episodes pass between progress logs.
const LOG_INTERVAL = 5000
