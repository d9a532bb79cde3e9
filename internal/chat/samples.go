package chat

// SampleMessages is the conversation shown when no transcript is loaded.
func SampleMessages() []Message {
	return []Message{
		{Timestamp: "10:00", Author: "Ana", Content: "Bom dia, pessoal! Conseguiram ver a proposta do cliente?"},
		{Timestamp: "10:02", Author: "Bruno", Content: "Vi sim. Eles querem o app pronto até o fim do mês."},
		{Timestamp: "10:03", Author: LocalAuthor, Content: "Acho apertado. O módulo de pagamentos ainda nem começou."},
		{Timestamp: "10:05", Author: "Ana", Content: "Podemos entregar primeiro o chat e deixar pagamentos para a segunda fase."},
		{Timestamp: "10:07", Author: "Carla", Content: "Concordo com a Ana. O chat já está quase todo testado."},
		{Timestamp: "10:08", Author: "Bruno", Content: "E o resumo das conversas? Eles pediram que funcione offline."},
		{Timestamp: "10:10", Author: LocalAuthor, Content: "Dá para rodar o modelo localmente. Testei com o Gemma 2 e ficou bom."},
		{Timestamp: "10:12", Author: "Carla", Content: "Quanto tempo leva para gerar um resumo?"},
		{Timestamp: "10:13", Author: LocalAuthor, Content: "Uns poucos segundos para cem mensagens no meu notebook."},
		{Timestamp: "10:15", Author: "Ana", Content: "Ótimo. Então fechamos: chat e resumo offline na primeira entrega."},
		{Timestamp: "10:16", Author: "Bruno", Content: "Vou avisar o cliente e marcar uma reunião para sexta."},
		{Timestamp: "10:18", Author: "Carla", Content: "Eu preparo a demo do resumo até quinta."},
	}
}
