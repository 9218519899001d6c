package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nathoo/lumina/engine/effects"
	"github.com/nathoo/lumina/engine/rules"
	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// Enemy IDs referenced by the chapters. Content must define all of them.
const (
	EnemyShadowWolf      = "shadow_wolf"
	EnemyBandit          = "bandit"
	EnemySkeletonWarrior = "skeleton_warrior"
	EnemyDarkLord        = "dark_lord"
)

// RequiredEnemies lists every enemy ID the chapters fight.
var RequiredEnemies = []string{EnemyShadowWolf, EnemyBandit, EnemySkeletonWarrior, EnemyDarkLord}

const (
	speakerAldric   = "Sábio Aldric"
	speakerStranger = "Estranho Encapuzado"
	speakerLyralei  = "Elfa Lyralei"
	speakerCaptain  = "Capitão da Guarda"
	speakerKeeper   = "Taberneiro"
	speakerMerchant = "Mercador Sombrio"
	speakerBandit   = "Bandido"
	speakerDarkLord = "Senhor das Trevas"
	speakerPlayer   = "{player.name}"

	itemKey = "Chave Ancestral"

	// magicCost buys magicDamage off the final boss before the fight.
	magicCost   = 30
	magicDamage = 40
)

var tavernChatter = []string{
	"Um anão ruivo canta desafinado no canto do salão.",
	"Dois mercenários disputam uma queda de braço sobre uma mesa encharcada de cerveja.",
	"Um bardo afina seu alaúde perto da lareira, ignorando os olhares impacientes.",
}

func (e *Engine) chapter1(ctx context.Context) (int, error) {
	e.system("CAPÍTULO 1: O CHAMADO DO DESTINO")
	e.narrate("Em uma pequena vila nas montanhas, você vivia uma vida simples como aprendiz de ferreiro.")
	e.narrate("Até que um dia, um estranho encapuzado chegou trazendo notícias terríveis...")
	if err := e.UI.Pause(ctx); err != nil {
		return 1, err
	}

	e.show(types.VoiceSage, speakerStranger, "Jovem, preciso de sua ajuda! O Cristal Sagrado de Lumina foi roubado!")
	e.show(types.VoiceSage, speakerStranger, "Sem ele, o reino mergulhará em trevas eternas dentro de sete luas!")

	name, err := e.UI.Prompt(ctx, "Qual é o seu nome, jovem herói?")
	if err != nil {
		return 1, err
	}
	if err := state.SetName(e.Player, name); err != nil {
		return 1, err
	}

	e.show(types.VoiceSage, speakerAldric, e.Player.Name+", você foi escolhido pela profecia antiga!")
	e.show(types.VoiceSage, speakerAldric, "Apenas alguém de coração puro pode recuperar o Cristal Perdido.")

	_, _, err = e.resolve(ctx, []types.Option{
		{
			Label: "Aceitar a missão heroicamente",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Aceito a missão! Não posso deixar o reino em perigo!"),
				effects.Say(types.VoiceSage, speakerAldric, "Que coragem admirável! Que os deuses te protejam!"),
				effects.SetFlag(types.FlagHeroicChoice),
			},
		},
		{
			Label: "Perguntar sobre a recompensa",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "E... qual seria a recompensa por essa missão?"),
				effects.Say(types.VoiceSage, speakerAldric, "Ah, pragmático! 1000 moedas de ouro e um item mágico lendário!"),
				effects.AddGold(50),
				effects.System("Sábio Aldric te dá 50 moedas de ouro como adiantamento!"),
			},
		},
		{
			Label: "Tentar recusar educadamente",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Eu... não sei se sou a pessoa certa para isso..."),
				effects.Say(types.VoiceSage, speakerAldric, "A humildade é uma virtude, mas o destino já foi traçado!"),
				effects.SetFlag(types.FlagHumbleChoice),
			},
		},
	})
	if err != nil {
		return 1, err
	}

	e.narrate("Sábio Aldric te entrega um mapa antigo e uma adaga élfica.")
	e.apply(ctx,
		effects.GiveItem("Mapa do Reino"),
		effects.GiveItem("Adaga Élfica"),
		effects.Equip("Adaga Élfica"),
		effects.System("Itens adicionados ao inventário!"),
	)
	e.narrate("Sua jornada épica está apenas começando...")
	if err := e.UI.Pause(ctx); err != nil {
		return 1, err
	}
	return 2, nil
}

func (e *Engine) chapter2(ctx context.Context) (int, error) {
	e.system("CAPÍTULO 2: A FLORESTA SOMBRIA")
	e.status()
	e.narrate("Seguindo o mapa, você chega à entrada da temida Floresta Sombria.")
	e.narrate("Árvores antigas sussurram segredos antigos enquanto sombras dançam entre os troncos.")
	if err := e.UI.Pause(ctx); err != nil {
		return 2, err
	}

	e.narrate("Subitamente, você escuta um grito de socorro vindo das profundezas da floresta!")
	choice, err := e.UI.Choose(ctx, []string{
		"Correr em direção ao grito",
		"Aproximar-se cautelosamente",
		"Ignorar e seguir pelo caminho principal",
	})
	if err != nil {
		return 2, err
	}

	switch choice {
	case 0:
		e.narrate("Você corre desesperadamente em direção ao som!")
		e.narrate("Tropeça em uma raiz e cai em uma armadilha!")
		outcome, err := e.encounter(ctx, EnemyShadowWolf)
		if err != nil {
			return 2, err
		}
		if outcome == types.Victory {
			e.narrate("Após derrotar o lobo, você encontra uma elfa ferida.")
			e.apply(ctx,
				effects.Say(types.VoiceNPC, speakerLyralei, "Obrigada, corajoso aventureiro! Sou Lyralei, guardiã da floresta."),
				effects.Say(types.VoiceNPC, speakerLyralei, "Tome esta poção mágica como recompensa por sua bravura!"),
				effects.GiveItem("Poção Mágica de Mana"),
				effects.SetFlag(types.FlagSavedElf),
			)
		}

	case 1:
		e.narrate("Você se aproxima silenciosamente...")
		e.narrate("Descobre que é uma armadilha de bandidos!")
		sub, _, err := e.resolve(ctx, []types.Option{
			{
				Label:   "Atacar de surpresa",
				Effects: []types.Effect{effects.Narrate("Você ataca de surpresa!")},
			},
			{
				Label: "Tentar negociar",
				Effects: []types.Effect{
					effects.Say(types.VoicePlayer, speakerPlayer, "Ei! Não queremos problemas aqui!"),
					effects.Say(types.VoiceEnemy, speakerBandit, "Então entregue suas moedas e ninguém se machuca!"),
					effects.Narrate("Você perde 30 moedas de ouro, mas evita o combate."),
					effects.AddGold(-30),
				},
			},
			{
				Label: "Recuar silenciosamente",
				Effects: []types.Effect{
					effects.Narrate("Você consegue recuar sem ser notado."),
					effects.Narrate("Ganha experiência por sua astúcia!"),
					effects.AddXP(15),
				},
			},
		})
		if err != nil {
			return 2, err
		}
		if sub == 0 {
			outcome, err := e.encounter(ctx, EnemyBandit)
			if err != nil {
				return 2, err
			}
			if outcome == types.Victory {
				e.apply(ctx,
					effects.Narrate("Você encontra um baú escondido com tesouros!"),
					effects.AddGold(75),
					effects.System("Você encontrou 75 moedas de ouro!"),
				)
			}
		}

	case 2:
		e.narrate("Você decide seguir pelo caminho principal.")
		e.narrate("Encontra um mercador misterioso...")
		e.show(types.VoiceNPC, speakerMerchant, "Psiu... jovem aventureiro! Tenho itens especiais para vender!")
		_, _, err := e.resolve(ctx, []types.Option{
			{
				Label:    "Comprar Espada de Aço (100 moedas)",
				Requires: []types.Condition{rules.GoldAtLeast(100)},
				Effects: []types.Effect{
					effects.AddGold(-100),
					effects.GiveItem("Espada de Aço"),
					effects.Equip("Espada de Aço"),
					effects.System("Você comprou uma Espada de Aço!"),
				},
				Otherwise: []types.Effect{effects.Warn("Você não tem ouro suficiente!")},
			},
			{
				Label:    "Comprar Poção de Vida (25 moedas)",
				Requires: []types.Condition{rules.GoldAtLeast(25)},
				Effects: []types.Effect{
					effects.AddGold(-25),
					effects.GiveItem(PotionName),
					effects.System("Você comprou uma Poção de Vida!"),
				},
				Otherwise: []types.Effect{effects.Warn("Você não tem ouro suficiente!")},
			},
			{
				Label:   "Recusar e continuar",
				Effects: []types.Effect{effects.Narrate("Você decide não confiar no mercador suspeito.")},
			},
		})
		if err != nil {
			return 2, err
		}
	}

	if !state.Alive(e.Player) {
		return 2, nil
	}

	e.narrate("Após várias horas caminhando, você finalmente sai da Floresta Sombria.")
	e.narrate("À distância, você vê as torres da Cidade de Pedra, seu próximo destino.")
	if err := e.UI.Pause(ctx); err != nil {
		return 2, err
	}
	return 3, nil
}

func (e *Engine) chapter3(ctx context.Context) (int, error) {
	e.system("CAPÍTULO 3: A CIDADE DE PEDRA")
	e.status()
	e.narrate("Você chega às imponentes muralhas da Cidade de Pedra.")
	e.narrate("Guardas armados patrulham as entradas, verificando todos os visitantes.")
	if err := e.UI.Pause(ctx); err != nil {
		return 3, err
	}

	e.show(types.VoiceGuard, speakerCaptain, "Alto aí, forasteiro! Declare seus negócios na cidade!")
	_, _, err := e.resolve(ctx, []types.Option{
		{
			Label: "Explicar sobre a missão do Cristal Perdido",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Estou em uma missão sagrada para recuperar o Cristal Perdido!"),
				effects.Say(types.VoiceGuard, speakerCaptain, "O Cristal Perdido?! Então você é o herói profetizado!"),
				effects.Say(types.VoiceGuard, speakerCaptain, "Entre, nobre aventureiro! O Prefeito quer falar com você!"),
				effects.SetFlag(types.FlagHonestWithGuards),
			},
		},
		{
			Label: "Mentir sobre ser um mercador",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Sou apenas um mercador humilde em busca de negócios."),
				effects.Say(types.VoiceGuard, speakerCaptain, "Hmm... está bem. Mas nada de confusão na cidade!"),
				effects.Narrate("Você entra na cidade, mas os guardas ficam desconfiados."),
			},
		},
		{
			Label:    "Mostrar as moedas de ouro como suborno",
			Requires: []types.Condition{rules.GoldAtLeast(50)},
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Talvez estas moedas possam acelerar o processo..."),
				effects.Say(types.VoiceGuard, speakerCaptain, "Bem... dessa vez vou fazer vista grossa."),
				effects.AddGold(-50),
				effects.System("Você perdeu 50 moedas de ouro!"),
			},
			Otherwise: []types.Effect{
				effects.Say(types.VoiceGuard, speakerCaptain, "Sem ouro suficiente para subornar? Que patético!"),
				effects.Narrate("Você é forçado a explicar sua missão."),
			},
		},
	})
	if err != nil {
		return 3, err
	}

	e.narrate("Dentro da cidade, você vê ruas movimentadas cheias de mercadores, artesãos e aventureiros.")
	e.narrate("Uma taverna chamada 'O Javali Dourado' chama sua atenção.")
	if err := e.UI.Pause(ctx); err != nil {
		return 3, err
	}

	chatter, err := Pick(e.RNG, tavernChatter)
	if err != nil {
		return 3, err
	}
	e.narrate(chatter)
	e.narrate("Dentro da taverna, você escuta rumores sobre uma masmorra antiga...")
	e.show(types.VoiceNPC, speakerKeeper, "Ei, aventureiro! Ouvi dizer que procura o Cristal Perdido!")
	e.show(types.VoiceNPC, speakerKeeper, "Há rumores de que foi levado para as Masmorras do Desespero!")
	e.show(types.VoiceNPC, speakerKeeper, "Mas cuidado... ninguém que entrou lá voltou para contar a história!")

	_, _, err = e.resolve(ctx, []types.Option{
		{
			Label: "Perguntar sobre as Masmorras do Desespero",
			Effects: []types.Effect{
				effects.Say(types.VoiceNPC, speakerKeeper, "Fica três dias de viagem ao norte. Cheia de mortos-vivos e demônios!"),
				effects.Say(types.VoiceNPC, speakerKeeper, "Dizem que no fundo dela está o Senhor das Trevas em pessoa!"),
				effects.SetFlag(types.FlagKnowsAboutDungeon),
			},
		},
		{
			Label: "Pedir informações sobre equipamentos",
			Effects: []types.Effect{
				effects.Say(types.VoiceNPC, speakerKeeper, "Há um ferreiro excelente aqui na cidade. Procure por Thorin Martelada!"),
				effects.Say(types.VoiceNPC, speakerKeeper, "Ele pode forjar armas poderosas... por um preço justo!"),
			},
		},
		{
			Label:    "Descansar no quarto da taverna (20 moedas)",
			Requires: []types.Condition{rules.GoldAtLeast(20)},
			Effects: []types.Effect{
				effects.AddGold(-20),
				effects.Rest(),
				effects.System("Você descansou e recuperou toda vida e mana!"),
				effects.Narrate("Durante a noite, você tem sonhos proféticos sobre o Cristal..."),
			},
			Otherwise: []types.Effect{effects.Warn("Você não tem ouro suficiente para um quarto!")},
		},
	})
	if err != nil {
		return 3, err
	}

	e.narrate("Após reunir informações, você se prepara para a jornada final.")
	e.narrate("As Masmorras do Desespero aguardam... e com elas, seu destino!")
	if err := e.UI.Pause(ctx); err != nil {
		return 3, err
	}
	return 4, nil
}

func (e *Engine) chapter4(ctx context.Context) (int, error) {
	e.system("CAPÍTULO 4: AS MASMORRAS DO DESESPERO")
	e.status()
	e.narrate("Após três dias de viagem árdua, você finalmente chega às Masmorras do Desespero.")
	e.narrate("Uma entrada sombria se abre na rocha, exalando um ar frio e malévolo.")
	e.narrate("Runas antigas brilham fracamente nas paredes de pedra.")
	if err := e.UI.Pause(ctx); err != nil {
		return 4, err
	}

	e.when(ctx, []types.Condition{rules.FlagSet(types.FlagKnowsAboutDungeon)},
		[]types.Effect{
			effects.Narrate("Você se lembra dos avisos do taberneiro: mortos-vivos guardam a entrada."),
			effects.Narrate("Você empunha sua {player.weapon}, pronto para o que vier."),
		},
		[]types.Effect{effects.Narrate("Você não faz ideia do que o aguarda nas profundezas...")},
	)
	e.narrate("Você desce as escadas de pedra. Cada passo ecoa sinistro pelas profundezas.")
	e.narrate("Subitamente, esqueletos emergem das sombras!")
	outcome, err := e.encounter(ctx, EnemySkeletonWarrior)
	if err != nil {
		return 4, err
	}
	if !state.Alive(e.Player) {
		return 4, nil
	}
	if outcome != types.Victory {
		// Ran from the gatekeeper: the descent starts over.
		e.narrate("Você consegue fugir, mas está ferido e cansado.")
		return 4, nil
	}

	e.apply(ctx,
		effects.Narrate("Você derrota o esqueleto e encontra uma chave misteriosa."),
		effects.GiveItem(itemKey),
		effects.System("Chave Ancestral adicionada ao inventário!"),
	)
	e.narrate("Mais profundamente na masmorra, você encontra uma porta trancada.")
	opened := e.when(ctx, []types.Condition{rules.HasItem(itemKey)},
		[]types.Effect{
			effects.Narrate("A Chave Ancestral brilha em sua mão..."),
			effects.RemoveItem(itemKey),
			effects.System("A chave gira na fechadura e se desfaz em pó."),
		},
		[]types.Effect{effects.Warn("A porta não cede sem a chave.")},
	)
	if err := e.UI.Pause(ctx); err != nil {
		return 4, err
	}
	if !opened {
		return 4, nil
	}

	e.narrate("A porta se abre revelando uma câmara imensa.")
	e.narrate("No centro, o Cristal Perdido flutua em um pedestal de mármore negro.")
	e.narrate("Mas guardando-o está uma figura encapuzada em armadura sombria...")
	e.show(types.VoiceEnemy, speakerDarkLord, "Então... o 'herói' finalmente chegou.")
	e.show(types.VoiceEnemy, speakerDarkLord, "Você realmente acha que pode me derrotar, mortal patético?")

	boss, err := e.enemy(EnemyDarkLord)
	if err != nil {
		return 4, err
	}
	stance, applied, err := e.resolve(ctx, []types.Option{
		{
			Label: "Desafiá-lo para combate",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Eu não temerei você! Pelo reino de Lumina!"),
				effects.Narrate("Você ergue sua {player.weapon} e avança!"),
			},
		},
		{
			Label: "Tentar negociar",
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Espere! Podemos chegar a um acordo!"),
				effects.Say(types.VoiceEnemy, speakerDarkLord, "Há apenas uma coisa que quero... sua alma!"),
			},
		},
		{
			Label:    "Usar magia (se tiver mana suficiente)",
			Requires: []types.Condition{rules.ManaAtLeast(magicCost)},
			Effects: []types.Effect{
				effects.Say(types.VoicePlayer, speakerPlayer, "Pelo poder da luz, eu te banirei!"),
				effects.Narrate("Você canaliza sua mana em um ataque mágico!"),
				effects.SpendMana(magicCost),
				effects.System(fmt.Sprintf("Você causa %d de dano mágico!", magicDamage)),
			},
			Otherwise: []types.Effect{effects.Warn("Você não tem mana suficiente!")},
		},
	})
	if err != nil {
		return 4, err
	}
	if stance == 2 && applied {
		boss.Health -= magicDamage
	}

	e.narrate("A batalha final está prestes a começar...")
	outcome, err = e.Fight(ctx, boss)
	if err != nil {
		return 4, err
	}

	if outcome != types.Victory {
		e.warn("💀 DERROTA... 💀")
		e.narrate("O Senhor das Trevas ri enquanto as trevas consomem o reino...")
		e.narrate("Mas talvez outro herói surja para continuar sua missão...")
		return FinalChapter + 1, nil
	}

	e.bossDefeated = true
	e.system("🏆 VITÓRIA ÉPICA! 🏆")
	e.apply(ctx,
		effects.Narrate("O Senhor das Trevas é derrotado! Sua armadura se desfaz em fumaça."),
		effects.Narrate("O Cristal Perdido brilha intensamente e flutua em sua direção."),
		effects.GiveItem("Cristal Perdido"),
		effects.AddGold(1000),
		effects.System("Você obteve o Cristal Perdido e 1000 moedas de ouro!"),
	)
	if err := e.UI.Pause(ctx); err != nil {
		return 4, err
	}
	e.narrate("Com o Cristal em suas mãos, você sente um poder incrível.")
	e.narrate("A luz volta a brilhar pelo reino de Lumina!")
	e.epilogue(ctx)
	return FinalChapter + 1, nil
}

func (e *Engine) epilogue(ctx context.Context) {
	e.system("EPÍLOGO: O RETORNO DO HERÓI")
	e.status()
	e.narrate("Você retorna triunfante à vila onde tudo começou.")
	e.narrate("O Sábio Aldric te espera com um sorriso orgulhoso.")
	e.show(types.VoiceSage, speakerAldric, e.Player.Name+"! Você conseguiu! O reino está salvo!")
	e.show(types.VoiceSage, speakerAldric, "Sua bravura será lembrada por gerações!")

	e.when(ctx, []types.Condition{rules.FlagSet(types.FlagSavedElf)}, []types.Effect{
		effects.Narrate("Lyralei, a elfa que você salvou, aparece para agradecer."),
		effects.Say(types.VoiceNPC, speakerLyralei, "Obrigada novamente, herói! A floresta estará sempre aberta para você!"),
	}, nil)
	e.when(ctx, []types.Condition{rules.FlagSet(types.FlagHonestWithGuards)}, []types.Effect{
		effects.Narrate("O Capitão da Guarda chega para te homenagear."),
		effects.Say(types.VoiceGuard, speakerCaptain, "Será sempre bem-vindo em nossa cidade, herói!"),
	}, nil)

	rule := strings.Repeat("━", 30)
	e.system("🌟 FINAL CONQUISTADO! 🌟")
	e.system("Estatísticas Finais:")
	e.system(rule)
	e.show(types.VoicePlayer, "", fmt.Sprintf("Nível Final: %d", e.Player.Level))
	e.show(types.VoicePlayer, "", fmt.Sprintf("Experiência: %d XP", e.Player.Experience))
	e.show(types.VoicePlayer, "", fmt.Sprintf("Ouro Final: %d moedas", e.Player.Gold))
	e.show(types.VoicePlayer, "", fmt.Sprintf("Itens no Inventário: %d", len(e.Player.Inventory)))
	e.system(rule)
	e.narrate("Obrigado por jogar 'A Lenda do Cristal Perdido'!")
	e.narrate("Sua jornada heroica chegou ao fim... ou seria apenas o começo?")
	e.system("🎮 FIM DE JOGO 🎮")
}
